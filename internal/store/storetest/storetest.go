// Package storetest holds the behavior every store.Store implementation must
// share. Adapter packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// Run exercises s against the store.Store contract. newStore must return an
// empty store; it is called once per sub-test.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("profile round trip", func(t *testing.T) { testProfileRoundTrip(t, newStore(t)) })
	t.Run("unknown token", func(t *testing.T) { testUnknownToken(t, newStore(t)) })
	t.Run("food log range and order", func(t *testing.T) { testFoodLogRange(t, newStore(t)) })
	t.Run("delete and clear", func(t *testing.T) { testDeleteAndClear(t, newStore(t)) })
	t.Run("earliest date", func(t *testing.T) { testEarliestDate(t, newStore(t)) })
}

// SampleProfile returns a fully populated profile record with the given token.
func SampleProfile(token string) store.ProfileRecord {
	p := nutrition.Profile{
		Name:          "Ada Lovelace",
		Sex:           nutrition.SexFemale,
		Age:           36,
		HeightCM:      165,
		WeightKG:      58,
		ActivityLevel: nutrition.ActivityLight,
		DietMode:      nutrition.DietCut,
	}
	rec := store.NewProfileRecord(p, nutrition.ComputeMetrics(p))
	rec.Email = "ada.lovelace." + token + "@demo.com"
	rec.PasswordHash = "$2a$10$placeholder"
	rec.SessionToken = token
	return rec
}

func day(s string) time.Time {
	t, err := time.Parse(store.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func item(profileID int64, on, name string, cal float64) store.FoodLogItem {
	return store.NewFoodLogItem(profileID, day(on), nutrition.LogEntry{
		Name: name, Quantity: 100, Calories: cal, Protein: 1, Carbs: 2, Fat: 3, Found: true,
	})
}

func testProfileRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	defer s.Close()

	created, err := s.CreateProfile(ctx, SampleProfile("tok-1"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetProfileByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Ada Lovelace", got.Name)
	require.Equal(t, nutrition.SexFemale, got.Sex)
	require.Equal(t, nutrition.DietCut, got.DietMode)
	require.Equal(t, created.BMI, got.BMI)
	require.Equal(t, created.BMICategory, got.BMICategory)
	require.InDelta(t, created.DailyCalories, got.DailyCalories, 1e-9)
}

func testUnknownToken(t *testing.T, s store.Store) {
	defer s.Close()

	_, err := s.GetProfileByToken(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound), "got %v", err)
}

func testFoodLogRange(t *testing.T, s store.Store) {
	ctx := context.Background()
	defer s.Close()

	p, err := s.CreateProfile(ctx, SampleProfile("tok-range"))
	require.NoError(t, err)

	for _, it := range []store.FoodLogItem{
		item(p.ID, "2026-03-02", "Banana", 89),
		item(p.ID, "2026-03-01", "Rice", 130),
		item(p.ID, "2026-03-02", "Egg", 155),
		item(p.ID, "2026-03-05", "Oats", 389),
	} {
		_, err := s.CreateFoodLogItem(ctx, it)
		require.NoError(t, err)
	}

	items, err := s.ListFoodLogItems(ctx, p.ID, day("2026-03-01"), day("2026-03-02"))
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "Rice", items[0].FoodName)
	require.Equal(t, "Banana", items[1].FoodName)
	require.Equal(t, "Egg", items[2].FoodName)
	require.Equal(t, "2026-03-02", items[1].LoggedOn.String())
	require.True(t, items[1].Found)

	totals := nutrition.SumTotals(store.ToLogEntries(items))
	require.Equal(t, 374.0, totals.Calories)

	none, err := s.ListFoodLogItems(ctx, p.ID, day("2026-04-01"), day("2026-04-30"))
	require.NoError(t, err)
	require.Empty(t, none)
}

func testDeleteAndClear(t *testing.T, s store.Store) {
	ctx := context.Background()
	defer s.Close()

	p, err := s.CreateProfile(ctx, SampleProfile("tok-del"))
	require.NoError(t, err)
	other, err := s.CreateProfile(ctx, SampleProfile("tok-other"))
	require.NoError(t, err)

	a, err := s.CreateFoodLogItem(ctx, item(p.ID, "2026-03-01", "Banana", 89))
	require.NoError(t, err)
	_, err = s.CreateFoodLogItem(ctx, item(p.ID, "2026-03-01", "Rice", 130))
	require.NoError(t, err)
	_, err = s.CreateFoodLogItem(ctx, item(other.ID, "2026-03-01", "Egg", 155))
	require.NoError(t, err)

	// Deleting another profile's row is a not-found, not a delete.
	err = s.DeleteFoodLogItem(ctx, other.ID, a.ID)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound), "got %v", err)

	require.NoError(t, s.DeleteFoodLogItem(ctx, p.ID, a.ID))
	items, err := s.ListFoodLogItems(ctx, p.ID, day("2026-03-01"), day("2026-03-01"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Rice", items[0].FoodName)

	require.NoError(t, s.ClearFoodLog(ctx, p.ID))
	items, err = s.ListFoodLogItems(ctx, p.ID, day("2026-03-01"), day("2026-03-01"))
	require.NoError(t, err)
	require.Empty(t, items)

	otherItems, err := s.ListFoodLogItems(ctx, other.ID, day("2026-03-01"), day("2026-03-01"))
	require.NoError(t, err)
	require.Len(t, otherItems, 1)
}

func testEarliestDate(t *testing.T, s store.Store) {
	ctx := context.Background()
	defer s.Close()

	p, err := s.CreateProfile(ctx, SampleProfile("tok-early"))
	require.NoError(t, err)

	_, ok, err := s.EarliestLogDate(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.CreateFoodLogItem(ctx, item(p.ID, "2026-02-10", "Banana", 89))
	require.NoError(t, err)
	_, err = s.CreateFoodLogItem(ctx, item(p.ID, "2026-01-15", "Rice", 130))
	require.NoError(t, err)

	d, ok, err := s.EarliestLogDate(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2026-01-15", d.String())
}
