package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
)

// getDailySummary returns the day's food-log items, their totals, and progress
// against the profile's daily target.
// GET /api/food-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	p := currentProfile(c)

	day := h.today()
	if s := c.Query("date"); s != "" {
		d, err := store.ParseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = d.Time
	}

	items, err := h.store.ListFoodLogItems(c, p.ID, day, day)
	if err != nil {
		h.storeError(c, err, "failed to fetch items")
		return
	}

	totals := nutrition.SumTotals(store.ToLogEntries(items))
	c.JSON(http.StatusOK, dailySummary{
		Date:        day.Format(store.DateLayout),
		Items:       items,
		Totals:      totals,
		Progress:    nutrition.ComputeProgress(totals, p.DailyCalories),
		DailyTarget: p.DailyCalories,
		BMI:         p.BMI,
		BMICategory: p.BMICategory,
		DietMode:    p.DietMode,
	})
}

// getWeekSummary returns per-day totals for the Mon–Sun week starting at
// week_start. Days with no logged items are included with has_data=false.
// GET /api/food-log/week-summary?week_start=YYYY-MM-DD (defaults to current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	p := currentProfile(c)

	weekStart := weekMonday(h.now())
	if s := c.Query("week_start"); s != "" {
		d, err := store.ParseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = d.Time
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	items, err := h.store.ListFoodLogItems(c, p.ID, weekStart, weekEnd)
	if err != nil {
		h.storeError(c, err, "failed to fetch week data")
		return
	}
	byDay := groupByDay(items)

	result := make([]daySummary, 7)
	for i := range result {
		d := store.NewDateOnly(weekStart.AddDate(0, 0, i))
		result[i] = summarizeDay(d, byDay[d.String()], p.DailyCalories)
	}

	c.JSON(http.StatusOK, result)
}

// maxProgressDays is the longest range, inclusive of both ends, that
// getProgress will walk.
const maxProgressDays = 366

// getProgress returns per-day totals and aggregate stats for a date range.
// GET /api/food-log/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with logged items are returned.
func (h *Handler) getProgress(c *gin.Context) {
	p := currentProfile(c)
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	from, err := store.ParseDate(start)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	to, err := store.ParseDate(end)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if from.After(to.Time) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}
	if !to.Before(from.AddDate(0, 0, maxProgressDays)) {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("range must not exceed %d days", maxProgressDays))
		return
	}

	items, err := h.store.ListFoodLogItems(c, p.ID, from.Time, to.Time)
	if err != nil {
		h.storeError(c, err, "failed to fetch progress data")
		return
	}
	byDay := groupByDay(items)

	days := make([]daySummary, 0, len(byDay))
	var stats progressStats
	for d := from.Time; !d.After(to.Time); d = d.AddDate(0, 0, 1) {
		key := d.Format(store.DateLayout)
		dayItems, ok := byDay[key]
		if !ok {
			continue
		}
		day := summarizeDay(store.NewDateOnly(d), dayItems, p.DailyCalories)
		days = append(days, day)

		stats.DaysTracked++
		if day.Totals.Calories <= p.DailyCalories {
			stats.DaysOnTarget++
		}
		stats.AvgCalories += day.Totals.Calories
		stats.AvgProtein += day.Totals.Protein
		stats.AvgCarbs += day.Totals.Carbs
		stats.AvgFat += day.Totals.Fat
	}

	// Convert totals to averages.
	if n := float64(stats.DaysTracked); n > 0 {
		stats.AvgCalories = round2(stats.AvgCalories / n)
		stats.AvgProtein = round2(stats.AvgProtein / n)
		stats.AvgCarbs = round2(stats.AvgCarbs / n)
		stats.AvgFat = round2(stats.AvgFat / n)
	}

	c.JSON(http.StatusOK, progressResponse{Days: days, Stats: stats})
}

// getEarliestLogDate returns the earliest date the profile has a food-log entry.
// GET /api/food-log/earliest-date.
// Returns { "date": "YYYY-MM-DD" } or { "date": null } if no entries exist.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	p := currentProfile(c)

	d, ok, err := h.store.EarliestLogDate(c, p.ID)
	if err != nil {
		h.storeError(c, err, "failed to fetch earliest date")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"date": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": d.String()})
}

// createFoodLogItem looks the food up in the catalog, derives its calories
// and macros for the given quantity, and stores the entry. Unknown foods are
// stored with zero values and found=false.
// POST /api/food-log/items. Defaults date to today if omitted.
func (h *Handler) createFoodLogItem(c *gin.Context) {
	p := currentProfile(c)

	var body createFoodLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.FoodName = strings.TrimSpace(body.FoodName)
	if body.FoodName == "" {
		apiError(c, http.StatusBadRequest, "food_name is required")
		return
	}
	if !(body.Quantity > 0) {
		apiError(c, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}
	if body.Quantity > maxQuantityGrams {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("quantity must be at most %d grams", maxQuantityGrams))
		return
	}

	day := h.today()
	if body.Date != "" {
		d, err := store.ParseDate(body.Date)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = d.Time
	}

	entry := nutrition.NewLogEntry(body.FoodName, body.Quantity, h.catalog)
	item, err := h.store.CreateFoodLogItem(c, store.NewFoodLogItem(p.ID, day, entry))
	if err != nil {
		h.storeError(c, err, "failed to create item")
		return
	}
	if !entry.Found {
		h.logger.Warn("food not in catalog", "profile_id", p.ID, "food_name", body.FoodName)
	}

	c.JSON(http.StatusCreated, item)
}

// deleteFoodLogItem removes a food-log entry. Returns 204 on success.
// DELETE /api/food-log/items/:id.
func (h *Handler) deleteFoodLogItem(c *gin.Context) {
	p := currentProfile(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.DeleteFoodLogItem(c, p.ID, id); err != nil {
		h.storeError(c, err, "failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

/* ─── Aggregation helpers ────────────────────────────────────────────── */

// groupByDay indexes items by their YYYY-MM-DD day, keeping order within a day.
func groupByDay(items []store.FoodLogItem) map[string][]store.FoodLogItem {
	out := make(map[string][]store.FoodLogItem)
	for _, it := range items {
		key := it.LoggedOn.String()
		out[key] = append(out[key], it)
	}
	return out
}

func summarizeDay(d store.DateOnly, items []store.FoodLogItem, target float64) daySummary {
	totals := nutrition.SumTotals(store.ToLogEntries(items))
	return daySummary{
		Date:        d,
		DailyTarget: target,
		Totals:      totals,
		Progress:    nutrition.ComputeProgress(totals, target),
		ItemCount:   len(items),
		HasData:     len(items) > 0,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
