// Package store defines the persistence port for profiles and food-log rows.
// The nutrition core never imports it; the HTTP layer moves plain values
// between the two.
package store

import (
	"context"
	"time"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
)

// ProfileRecord is a persisted profile with the metrics computed at save time.
type ProfileRecord struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	PasswordHash  string                  `json:"-"`
	SessionToken  string                  `json:"-"`
	Age           int                     `json:"age"`
	Sex           nutrition.Sex           `json:"sex"`
	HeightCM      float64                 `json:"height_cm"`
	WeightKG      float64                 `json:"weight_kg"`
	ActivityLevel nutrition.ActivityLevel `json:"activity_level"`
	DietMode      nutrition.DietMode      `json:"diet_mode"`
	BMI           float64                 `json:"bmi"`
	BMICategory   nutrition.BMICategory   `json:"bmi_category"`
	BMR           float64                 `json:"bmr"`
	DailyCalories float64                 `json:"daily_calories"`
	CreatedAt     time.Time               `json:"created_at"`
}

// NewProfileRecord copies calculator input and its metrics into a record.
// Credentials are left for the caller to fill in.
func NewProfileRecord(p nutrition.Profile, m nutrition.Metrics) ProfileRecord {
	return ProfileRecord{
		Name:          p.Name,
		Age:           p.Age,
		Sex:           p.Sex,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		ActivityLevel: p.ActivityLevel,
		DietMode:      p.DietMode,
		BMI:           m.BMI,
		BMICategory:   m.BMICategory,
		BMR:           m.BMR,
		DailyCalories: m.DailyTarget,
	}
}

// Profile converts the record back into calculator input.
func (p ProfileRecord) Profile() nutrition.Profile {
	return nutrition.Profile{
		Name:          p.Name,
		Sex:           p.Sex,
		Age:           p.Age,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		ActivityLevel: p.ActivityLevel,
		DietMode:      p.DietMode,
	}
}

// FoodLogItem is one persisted food-log row.
type FoodLogItem struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	LoggedOn  DateOnly  `json:"logged_on"`
	FoodName  string    `json:"food_name"`
	Quantity  float64   `json:"quantity"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	Found     bool      `json:"found"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFoodLogItem copies a computed entry into a row for profileID on day.
func NewFoodLogItem(profileID int64, day time.Time, e nutrition.LogEntry) FoodLogItem {
	return FoodLogItem{
		ProfileID: profileID,
		LoggedOn:  NewDateOnly(day),
		FoodName:  e.Name,
		Quantity:  e.Quantity,
		Calories:  e.Calories,
		ProteinG:  e.Protein,
		CarbsG:    e.Carbs,
		FatG:      e.Fat,
		Found:     e.Found,
	}
}

// Entry converts the row back into a nutrition.LogEntry.
func (i FoodLogItem) Entry() nutrition.LogEntry {
	return nutrition.LogEntry{
		Name:     i.FoodName,
		Quantity: i.Quantity,
		Calories: i.Calories,
		Protein:  i.ProteinG,
		Carbs:    i.CarbsG,
		Fat:      i.FatG,
		Found:    i.Found,
	}
}

// ToLogEntries converts rows in order.
func ToLogEntries(items []FoodLogItem) []nutrition.LogEntry {
	out := make([]nutrition.LogEntry, 0, len(items))
	for _, it := range items {
		out = append(out, it.Entry())
	}
	return out
}

// Store persists profiles and their food logs. Lookups of missing rows
// return an error carrying apperrors.CodeNotFound.
type Store interface {
	CreateProfile(ctx context.Context, p ProfileRecord) (ProfileRecord, error)
	GetProfileByToken(ctx context.Context, token string) (ProfileRecord, error)

	CreateFoodLogItem(ctx context.Context, item FoodLogItem) (FoodLogItem, error)
	// ListFoodLogItems returns rows with from <= LoggedOn <= to, oldest first.
	ListFoodLogItems(ctx context.Context, profileID int64, from, to time.Time) ([]FoodLogItem, error)
	DeleteFoodLogItem(ctx context.Context, profileID, itemID int64) error
	ClearFoodLog(ctx context.Context, profileID int64) error
	// EarliestLogDate returns ok=false when the profile has no rows.
	EarliestLogDate(ctx context.Context, profileID int64) (DateOnly, bool, error)

	Close() error
}
