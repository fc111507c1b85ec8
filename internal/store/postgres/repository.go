// Package postgres persists profiles and food logs in PostgreSQL through a
// pgx connection pool. The schema lives in db/*.sql and is applied by
// cmd/migrate.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// userRow maps to the users table.
type userRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Password    string    `db:"password"`
	AuthToken   string    `db:"auth_token"`
	Age         int       `db:"age"`
	Gender      string    `db:"gender"`
	HeightCM    float64   `db:"height_cm"`
	WeightKG    float64   `db:"weight_kg"`
	Activity    string    `db:"activity"`
	DietMode    string    `db:"diet_mode"`
	BMI         float64   `db:"bmi"`
	BMICategory string    `db:"bmi_category"`
	BMR         float64   `db:"bmr"`
	DailyCal    float64   `db:"daily_cal"`
	CreatedAt   time.Time `db:"created_at"`
}

// foodLogRow maps to the food_log table.
type foodLogRow struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	LoggedOn  store.DateOnly `db:"logged_on"`
	FoodName  string         `db:"food_name"`
	Quantity  float64        `db:"quantity"`
	Calories  float64        `db:"calories"`
	ProteinG  float64        `db:"protein_g"`
	CarbsG    float64        `db:"carbs_g"`
	FatG      float64        `db:"fat_g"`
	Found     bool           `db:"found"`
	CreatedAt time.Time      `db:"created_at"`
}

// Repository implements store.Store on a pgx pool.
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPool creates a connection pool for dsn. The simple query protocol
// avoids "cached plan must not change result type" errors after schema
// changes on poolers that cache prepared statements.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// NewRepository wraps pool.
func NewRepository(pool *pgxpool.Pool, logger *slog.Logger) *Repository {
	return &Repository{pool: pool, logger: logger.With("component", "postgres")}
}

/* ─── Query helpers ──────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Query and scan errors are logged to catch struct/column mismatches.
func queryOne[T any](ctx context.Context, r *Repository, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := r.pool.Query(ctx, sql, args)
	if err != nil {
		r.logger.Error("query failed", "op", "queryOne", "error", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("scan failed", "op", "queryOne", "error", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, r *Repository, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := r.pool.Query(ctx, sql, args)
	if err != nil {
		r.logger.Error("query failed", "op", "queryMany", "error", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		r.logger.Error("scan failed", "op", "queryMany", "error", err)
	}
	return results, err
}

/* ─── store.Store ────────────────────────────────────────────────────── */

func (r *Repository) CreateProfile(ctx context.Context, p store.ProfileRecord) (store.ProfileRecord, error) {
	row, err := queryOne[userRow](ctx, r,
		`INSERT INTO users (name, email, password, auth_token, age, gender, height_cm, weight_kg,
		                    activity, diet_mode, bmi, bmi_category, bmr, daily_cal)
		 VALUES (@name, @email, @password, @authToken, @age, @gender, @heightCM, @weightKG,
		         @activity, @dietMode, @bmi, @bmiCategory, @bmr, @dailyCal)
		 RETURNING *`,
		pgx.NamedArgs{
			"name": p.Name, "email": p.Email, "password": p.PasswordHash, "authToken": p.SessionToken,
			"age": p.Age, "gender": string(p.Sex), "heightCM": p.HeightCM, "weightKG": p.WeightKG,
			"activity": string(p.ActivityLevel), "dietMode": string(p.DietMode),
			"bmi": p.BMI, "bmiCategory": string(p.BMICategory), "bmr": p.BMR, "dailyCal": p.DailyCalories,
		})
	if err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
	}
	return toProfileRecord(row), nil
}

func (r *Repository) GetProfileByToken(ctx context.Context, token string) (store.ProfileRecord, error) {
	row, err := queryOne[userRow](ctx, r,
		"SELECT * FROM users WHERE auth_token = @token",
		pgx.NamedArgs{"token": token})
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ProfileRecord{}, apperrors.NotFound("profile not found")
	}
	if err != nil {
		return store.ProfileRecord{}, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch profile", err)
	}
	return toProfileRecord(row), nil
}

func (r *Repository) CreateFoodLogItem(ctx context.Context, item store.FoodLogItem) (store.FoodLogItem, error) {
	row, err := queryOne[foodLogRow](ctx, r,
		`INSERT INTO food_log (user_id, logged_on, food_name, quantity, calories, protein_g, carbs_g, fat_g, found)
		 VALUES (@userID, @loggedOn, @foodName, @quantity, @calories, @proteinG, @carbsG, @fatG, @found)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": item.ProfileID, "loggedOn": item.LoggedOn.String(), "foodName": item.FoodName,
			"quantity": item.Quantity, "calories": item.Calories, "proteinG": item.ProteinG,
			"carbsG": item.CarbsG, "fatG": item.FatG, "found": item.Found,
		})
	if err != nil {
		return store.FoodLogItem{}, apperrors.Wrap(apperrors.CodeStorage, "failed to create item", err)
	}
	return toFoodLogItem(row), nil
}

func (r *Repository) ListFoodLogItems(ctx context.Context, profileID int64, from, to time.Time) ([]store.FoodLogItem, error) {
	rows, err := queryMany[foodLogRow](ctx, r,
		`SELECT * FROM food_log
		 WHERE user_id = @userID AND logged_on >= @from AND logged_on <= @to
		 ORDER BY logged_on, id`,
		pgx.NamedArgs{
			"userID": profileID,
			"from":   store.NewDateOnly(from).String(),
			"to":     store.NewDateOnly(to).String(),
		})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch items", err)
	}

	items := make([]store.FoodLogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toFoodLogItem(row))
	}
	return items, nil
}

func (r *Repository) DeleteFoodLogItem(ctx context.Context, profileID, itemID int64) error {
	result, err := r.pool.Exec(ctx,
		"DELETE FROM food_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": itemID, "userID": profileID})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete item", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound("item not found")
	}
	return nil
}

func (r *Repository) ClearFoodLog(ctx context.Context, profileID int64) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM food_log WHERE user_id = @userID",
		pgx.NamedArgs{"userID": profileID})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear log", err)
	}
	return nil
}

func (r *Repository) EarliestLogDate(ctx context.Context, profileID int64) (store.DateOnly, bool, error) {
	// MIN over no rows is NULL; scan through a nullable string.
	var earliest *string
	err := r.pool.QueryRow(ctx,
		`SELECT TO_CHAR(MIN(logged_on), 'YYYY-MM-DD') FROM food_log WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": profileID}).Scan(&earliest)
	if err != nil {
		return store.DateOnly{}, false, apperrors.Wrap(apperrors.CodeStorage, "failed to fetch earliest date", err)
	}
	if earliest == nil {
		return store.DateOnly{}, false, nil
	}
	d, err := store.ParseDate(*earliest)
	if err != nil {
		return store.DateOnly{}, false, apperrors.Wrap(apperrors.CodeStorage, "corrupt logged_on value", err)
	}
	return d, true, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func toProfileRecord(row userRow) store.ProfileRecord {
	return store.ProfileRecord{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		PasswordHash:  row.Password,
		SessionToken:  row.AuthToken,
		Age:           row.Age,
		Sex:           nutrition.Sex(row.Gender),
		HeightCM:      row.HeightCM,
		WeightKG:      row.WeightKG,
		ActivityLevel: nutrition.ActivityLevel(row.Activity),
		DietMode:      nutrition.DietMode(row.DietMode),
		BMI:           row.BMI,
		BMICategory:   nutrition.BMICategory(row.BMICategory),
		BMR:           row.BMR,
		DailyCalories: row.DailyCal,
		CreatedAt:     row.CreatedAt,
	}
}

func toFoodLogItem(row foodLogRow) store.FoodLogItem {
	return store.FoodLogItem{
		ID:        row.ID,
		ProfileID: row.UserID,
		LoggedOn:  row.LoggedOn,
		FoodName:  row.FoodName,
		Quantity:  row.Quantity,
		Calories:  row.Calories,
		ProteinG:  row.ProteinG,
		CarbsG:    row.CarbsG,
		FatG:      row.FatG,
		Found:     row.Found,
		CreatedAt: row.CreatedAt,
	}
}

var _ store.Store = (*Repository)(nil)
