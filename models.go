package main

import (
	"fmt"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
)

/* ─── Requests ───────────────────────────────────────────────────────── */

// maxQuantityGrams caps a single logged or previewed quantity.
const maxQuantityGrams = 100_000

// createProfileRequest is the request body for POST /api/profile.
// Every field is required; numeric fields must be positive and within the
// nutrition.Max* bounds.
type createProfileRequest struct {
	Name          string  `json:"name"`
	Sex           string  `json:"sex"`
	Age           int     `json:"age"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	DietMode      string  `json:"diet_mode"`
}

// validate returns the first problem with the request, or "" when it is usable.
func (r createProfileRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.Sex == "":
		return "sex is required"
	case r.ActivityLevel == "":
		return "activity_level is required"
	case r.DietMode == "":
		return "diet_mode is required"
	case r.Age <= 0:
		return "age must be greater than 0"
	case r.Age > nutrition.MaxAgeYears:
		return fmt.Sprintf("age must be at most %d", nutrition.MaxAgeYears)
	case !(r.HeightCM > 0):
		return "height_cm must be greater than 0"
	case r.HeightCM > nutrition.MaxHeightCM:
		return fmt.Sprintf("height_cm must be at most %d", nutrition.MaxHeightCM)
	case !(r.WeightKG > 0):
		return "weight_kg must be greater than 0"
	case r.WeightKG > nutrition.MaxWeightKG:
		return fmt.Sprintf("weight_kg must be at most %d", nutrition.MaxWeightKG)
	}
	return ""
}

func (r createProfileRequest) profile() nutrition.Profile {
	return nutrition.Profile{
		Name:          r.Name,
		Sex:           nutrition.Sex(r.Sex),
		Age:           r.Age,
		HeightCM:      r.HeightCM,
		WeightKG:      r.WeightKG,
		ActivityLevel: nutrition.ActivityLevel(r.ActivityLevel),
		DietMode:      nutrition.DietMode(r.DietMode),
	}
}

// createFoodLogItemRequest is the request body for POST /api/food-log/items.
// Date defaults to today when omitted.
type createFoodLogItemRequest struct {
	Date     string  `json:"date"`
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// profileResponse is returned by the profile routes. Token is only set when
// the profile is first created.
type profileResponse struct {
	Profile store.ProfileRecord `json:"profile"`
	Metrics nutrition.Metrics   `json:"metrics"`
	Token   string              `json:"token,omitempty"`
}

// dailySummary is the response shape for GET /food-log/daily: the day's
// items, their totals, and progress against the profile's daily target.
type dailySummary struct {
	Date        string                `json:"date"`
	Items       []store.FoodLogItem   `json:"items"`
	Totals      nutrition.Totals      `json:"totals"`
	Progress    nutrition.Progress    `json:"progress"`
	DailyTarget float64               `json:"daily_target"`
	BMI         float64               `json:"bmi"`
	BMICategory nutrition.BMICategory `json:"bmi_category"`
	DietMode    nutrition.DietMode    `json:"diet_mode"`
}

// daySummary is one day's entry in the week-summary and progress responses.
// Days with no logged items have HasData=false and zero totals.
type daySummary struct {
	Date        store.DateOnly     `json:"date"`
	DailyTarget float64            `json:"daily_target"`
	Totals      nutrition.Totals   `json:"totals"`
	Progress    nutrition.Progress `json:"progress"`
	ItemCount   int                `json:"item_count"`
	HasData     bool               `json:"has_data"`
}

// progressStats aggregates the days returned by GET /food-log/progress.
// Averages are over tracked days only and rounded to 2 decimals.
type progressStats struct {
	DaysTracked  int     `json:"days_tracked"`
	DaysOnTarget int     `json:"days_on_target"`
	AvgCalories  float64 `json:"avg_calories"`
	AvgProtein   float64 `json:"avg_protein"`
	AvgCarbs     float64 `json:"avg_carbs"`
	AvgFat       float64 `json:"avg_fat"`
}

// progressResponse is the response shape for GET /food-log/progress.
type progressResponse struct {
	Days  []daySummary  `json:"days"`
	Stats progressStats `json:"stats"`
}

// foodLookupResponse previews a log entry without persisting it. Food is nil
// when the name is not in the catalog.
type foodLookupResponse struct {
	Entry nutrition.LogEntry          `json:"entry"`
	Food  *nutrition.FoodCatalogEntry `json:"food"`
}
