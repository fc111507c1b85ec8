package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/PodderInstituteBD/NutriVision/internal/store"
)

// logFood posts a food-log item and returns the stored row.
func logFood(t *testing.T, router *gin.Engine, token, body string) store.FoodLogItem {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/food-log/items", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[store.FoodLogItem](t, w)
}

func TestCreateFoodLogItem_KnownFood(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	item := logFood(t, router, token, `{"food_name":"banana","quantity":150}`)
	require.NotZero(t, item.ID)
	require.True(t, item.Found)
	require.Equal(t, "2026-03-04", item.LoggedOn.String())
	require.Equal(t, 133.5, item.Calories)
	require.Equal(t, 1.65, item.ProteinG)
	require.Equal(t, 34.2, item.CarbsG)
	require.Equal(t, 0.45, item.FatG)
}

// TestCreateFoodLogItem_UnknownFood verifies that unknown foods are stored with
// zero nutrition and found=false rather than rejected.
func TestCreateFoodLogItem_UnknownFood(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	item := logFood(t, router, token, `{"food_name":"Dragonfruit","quantity":100,"date":"2026-03-01"}`)
	require.False(t, item.Found)
	require.Equal(t, "2026-03-01", item.LoggedOn.String())
	require.Zero(t, item.Calories)
	require.Zero(t, item.ProteinG)
}

func TestCreateFoodLogItem_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `nope`, "invalid request body"},
		{"missing name", `{"quantity":100}`, "food_name is required"},
		{"blank name", `{"food_name":"   ","quantity":100}`, "food_name is required"},
		{"zero quantity", `{"food_name":"Banana","quantity":0}`, "quantity must be greater than 0"},
		{"negative quantity", `{"food_name":"Banana","quantity":-5}`, "quantity must be greater than 0"},
		{"huge quantity", `{"food_name":"Banana","quantity":1e308}`, "quantity must be at most 100000 grams"},
		{"bad date", `{"food_name":"Banana","quantity":100,"date":"03/04/2026"}`, "invalid date, expected YYYY-MM-DD"},
	}

	router := setupTestRouter(t)
	token := createTestProfile(t, router)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/food-log/items", tc.body, token)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, tc.want, decode[map[string]string](t, w)["error"])
		})
	}
}

func TestGetDailySummary(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	logFood(t, router, token, `{"food_name":"Banana","quantity":150}`)
	logFood(t, router, token, `{"food_name":"White Rice","quantity":200}`)
	logFood(t, router, token, `{"food_name":"Dragonfruit","quantity":100}`)
	logFood(t, router, token, `{"food_name":"Banana","quantity":100,"date":"2026-03-03"}`)

	w := doRequest(router, http.MethodGet, "/api/food-log/daily", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[dailySummary](t, w)
	require.Equal(t, "2026-03-04", resp.Date)
	require.Len(t, resp.Items, 3)
	require.Equal(t, "Banana", resp.Items[0].FoodName)
	require.Equal(t, "White Rice", resp.Items[1].FoodName)
	require.False(t, resp.Items[2].Found)

	// 133.5 + 260 + 0 kcal against a 2981.5 target.
	require.Equal(t, 393.5, resp.Totals.Calories)
	require.Equal(t, 7.05, resp.Totals.Protein)
	require.Equal(t, 90.6, resp.Totals.Carbs)
	require.Equal(t, 1.05, resp.Totals.Fat)
	require.Equal(t, 2588.0, resp.Progress.RemainingCalories)
	require.Equal(t, 13.2, resp.Progress.ProgressPercent)
	require.False(t, resp.Progress.OverTarget)
	require.Equal(t, 2981.5, resp.DailyTarget)
	require.Equal(t, 23.15, resp.BMI)
	require.Equal(t, "bulk", string(resp.DietMode))

	w = doRequest(router, http.MethodGet, "/api/food-log/daily?date=2026-03-03", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 89.0, decode[dailySummary](t, w).Totals.Calories)
}

func TestGetDailySummary_EmptyDayAndBadDate(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	w := doRequest(router, http.MethodGet, "/api/food-log/daily?date=2026-01-01", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, string(mustField(t, w, "items")))
	resp := decode[dailySummary](t, w)
	require.Zero(t, resp.Totals.Calories)
	require.Equal(t, 2981.5, resp.Progress.RemainingCalories)
	require.Zero(t, resp.Progress.ProgressPercent)

	w = doRequest(router, http.MethodGet, "/api/food-log/daily?date=yesterday", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestGetDailySummary_OverTarget verifies remaining is clamped at 0 and percent
// at 100 once the target is exceeded.
func TestGetDailySummary_OverTarget(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	logFood(t, router, token, `{"food_name":"White Rice","quantity":2500}`)

	w := doRequest(router, http.MethodGet, "/api/food-log/daily", "", token)
	resp := decode[dailySummary](t, w)
	require.Equal(t, 3250.0, resp.Totals.Calories)
	require.Equal(t, 0.0, resp.Progress.RemainingCalories)
	require.Equal(t, 100.0, resp.Progress.ProgressPercent)
	require.True(t, resp.Progress.OverTarget)
}

func TestDeleteFoodLogItem(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)
	other := createTestProfile(t, router)

	item := logFood(t, router, token, `{"food_name":"Banana","quantity":100}`)
	path := fmt.Sprintf("/api/food-log/items/%d", item.ID)

	// Another session cannot delete it.
	w := doRequest(router, http.MethodDelete, path, "", other)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, path, "", token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, path, "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "item not found", decode[map[string]string](t, w)["error"])

	w = doRequest(router, http.MethodDelete, "/api/food-log/items/abc", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWeekSummary(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	logFood(t, router, token, `{"food_name":"Banana","quantity":150}`)
	logFood(t, router, token, `{"food_name":"White Rice","quantity":100,"date":"2026-03-08"}`)
	logFood(t, router, token, `{"food_name":"White Rice","quantity":100,"date":"2026-03-09"}`)

	w := doRequest(router, http.MethodGet, "/api/food-log/week-summary", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	days := decode[[]daySummary](t, w)
	require.Len(t, days, 7)
	require.Equal(t, "2026-03-02", days[0].Date.String())
	require.Equal(t, "2026-03-08", days[6].Date.String())
	require.False(t, days[0].HasData)
	require.True(t, days[2].HasData)
	require.Equal(t, 133.5, days[2].Totals.Calories)
	require.Equal(t, 1, days[2].ItemCount)
	require.Equal(t, 130.0, days[6].Totals.Calories)
	require.Equal(t, 2981.5, days[0].Progress.RemainingCalories)

	w = doRequest(router, http.MethodGet, "/api/food-log/week-summary?week_start=2026-03-09", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	days = decode[[]daySummary](t, w)
	require.True(t, days[0].HasData)
	require.False(t, days[1].HasData)

	w = doRequest(router, http.MethodGet, "/api/food-log/week-summary?week_start=bad", "", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProgress(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	logFood(t, router, token, `{"food_name":"Banana","quantity":150,"date":"2026-03-01"}`)
	logFood(t, router, token, `{"food_name":"White Rice","quantity":200,"date":"2026-03-01"}`)
	logFood(t, router, token, `{"food_name":"Banana","quantity":100,"date":"2026-03-03"}`)
	logFood(t, router, token, `{"food_name":"Banana","quantity":100,"date":"2026-04-01"}`)

	w := doRequest(router, http.MethodGet, "/api/food-log/progress?start=2026-03-01&end=2026-03-31", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[progressResponse](t, w)
	require.Len(t, resp.Days, 2)
	require.Equal(t, "2026-03-01", resp.Days[0].Date.String())
	require.Equal(t, "2026-03-03", resp.Days[1].Date.String())
	require.Equal(t, 2, resp.Stats.DaysTracked)
	require.Equal(t, 2, resp.Stats.DaysOnTarget)
	// (393.5 + 89) / 2
	require.Equal(t, 241.25, resp.Stats.AvgCalories)
	require.Equal(t, 56.7, resp.Stats.AvgCarbs)
}

func TestGetProgress_Validation(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	cases := map[string]string{
		"/api/food-log/progress":                                 "start and end query params are required",
		"/api/food-log/progress?start=2026-03-01":                "start and end query params are required",
		"/api/food-log/progress?start=x&end=2026-03-01":          "invalid start, expected YYYY-MM-DD",
		"/api/food-log/progress?start=2026-03-01&end=x":          "invalid end, expected YYYY-MM-DD",
		"/api/food-log/progress?start=2026-03-02&end=2026-03-01": "start must not be after end",
		"/api/food-log/progress?start=2025-01-01&end=2026-01-02": "range must not exceed 366 days",
		"/api/food-log/progress?start=0001-01-01&end=9999-12-31": "range must not exceed 366 days",
	}
	for path, want := range cases {
		w := doRequest(router, http.MethodGet, path, "", token)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, want, decode[map[string]string](t, w)["error"], path)
	}

	// 2025-01-01 through 2026-01-01 is exactly 366 days.
	w := doRequest(router, http.MethodGet, "/api/food-log/progress?start=2025-01-01&end=2026-01-01", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGetEarliestLogDate(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	w := doRequest(router, http.MethodGet, "/api/food-log/earliest-date", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"date":null}`, w.Body.String())

	logFood(t, router, token, `{"food_name":"Banana","quantity":100,"date":"2026-02-10"}`)
	logFood(t, router, token, `{"food_name":"Banana","quantity":100,"date":"2026-01-15"}`)

	w = doRequest(router, http.MethodGet, "/api/food-log/earliest-date", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"date":"2026-01-15"}`, w.Body.String())
}

// TestEndSession verifies the log is cleared while the token stays usable.
func TestEndSession(t *testing.T) {
	router := setupTestRouter(t)
	token := createTestProfile(t, router)

	logFood(t, router, token, `{"food_name":"Banana","quantity":100}`)

	w := doRequest(router, http.MethodDelete, "/api/session", "", token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/api/food-log/daily", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[dailySummary](t, w).Items)
}
