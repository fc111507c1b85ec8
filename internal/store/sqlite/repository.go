// Package sqlite persists profiles and food logs in a local SQLite file,
// using the users and food_log tables.
package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// Repository implements store.Store on gorm.
type Repository struct {
	db *gorm.DB
}

// Open connects to the SQLite file at path using the pure-Go driver.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

// NewRepository wraps an open, migrated database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateProfile(ctx context.Context, p store.ProfileRecord) (store.ProfileRecord, error) {
	m := UserModel{
		Name:        p.Name,
		Email:       p.Email,
		Password:    p.PasswordHash,
		AuthToken:   p.SessionToken,
		Age:         p.Age,
		Gender:      string(p.Sex),
		Height:      p.HeightCM,
		Weight:      p.WeightKG,
		Activity:    string(p.ActivityLevel),
		DietMode:    string(p.DietMode),
		BMI:         p.BMI,
		BMICategory: string(p.BMICategory),
		BMR:         p.BMR,
		DailyCal:    p.DailyCalories,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
	}
	return toProfileRecord(m), nil
}

func (r *Repository) GetProfileByToken(ctx context.Context, token string) (store.ProfileRecord, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where("auth_token = ?", token).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ProfileRecord{}, apperrors.NotFound("profile not found")
	}
	if err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch profile", err)
	}
	return toProfileRecord(m), nil
}

func (r *Repository) CreateFoodLogItem(ctx context.Context, item store.FoodLogItem) (store.FoodLogItem, error) {
	m := FoodLogModel{
		UserID:   item.ProfileID,
		LoggedOn: item.LoggedOn.String(),
		FoodName: item.FoodName,
		Quantity: item.Quantity,
		Calories: item.Calories,
		Protein:  item.ProteinG,
		Carbs:    item.CarbsG,
		Fat:      item.FatG,
		Found:    item.Found,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create item", err)
	}
	return toFoodLogItem(m)
}

func (r *Repository) ListFoodLogItems(ctx context.Context, profileID int64, from, to time.Time) ([]store.FoodLogItem, error) {
	rows := make([]FoodLogModel, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_on >= ? AND logged_on <= ?",
			profileID, store.NewDateOnly(from).String(), store.NewDateOnly(to).String()).
		Order("logged_on ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch items", err)
	}

	result := make([]store.FoodLogItem, 0, len(rows))
	for _, m := range rows {
		it, err := toFoodLogItem(m)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, nil
}

func (r *Repository) DeleteFoodLogItem(ctx context.Context, profileID, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, profileID).
		Delete(&FoodLogModel{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete item", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("item not found")
	}
	return nil
}

func (r *Repository) ClearFoodLog(ctx context.Context, profileID int64) error {
	err := r.db.WithContext(ctx).Where("user_id = ?", profileID).Delete(&FoodLogModel{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear log", err)
	}
	return nil
}

func (r *Repository) EarliestLogDate(ctx context.Context, profileID int64) (store.DateOnly, bool, error) {
	var result struct {
		Earliest *string
	}
	err := r.db.WithContext(ctx).Model(&FoodLogModel{}).
		Select("MIN(logged_on) AS earliest").
		Where("user_id = ?", profileID).
		Scan(&result).Error
	if err != nil {
		return store.DateOnly{}, false, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch earliest date", err)
	}
	if result.Earliest == nil {
		return store.DateOnly{}, false, nil
	}
	d, err := store.ParseDate(*result.Earliest)
	if err != nil {
		return store.DateOnly{}, false, apperrors.Wrap(apperrors.CodeStorage, "corrupt logged_on value", err)
	}
	return d, true, nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toProfileRecord(m UserModel) store.ProfileRecord {
	return store.ProfileRecord{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.Password,
		SessionToken:  m.AuthToken,
		Age:           m.Age,
		Sex:           nutrition.Sex(m.Gender),
		HeightCM:      m.Height,
		WeightKG:      m.Weight,
		ActivityLevel: nutrition.ActivityLevel(m.Activity),
		DietMode:      nutrition.DietMode(m.DietMode),
		BMI:           m.BMI,
		BMICategory:   nutrition.BMICategory(m.BMICategory),
		BMR:           m.BMR,
		DailyCalories: m.DailyCal,
		CreatedAt:     m.CreatedAt,
	}
}

func toFoodLogItem(m FoodLogModel) (store.FoodLogItem, error) {
	d, err := store.ParseDate(m.LoggedOn)
	if err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "corrupt logged_on value", err)
	}
	return store.FoodLogItem{
		ID:        m.ID,
		ProfileID: m.UserID,
		LoggedOn:  d,
		FoodName:  m.FoodName,
		Quantity:  m.Quantity,
		Calories:  m.Calories,
		ProteinG:  m.Protein,
		CarbsG:    m.Carbs,
		FatG:      m.Fat,
		Found:     m.Found,
		CreatedAt: m.CreatedAt,
	}, nil
}

var _ store.Store = (*Repository)(nil)
