package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
)

// listFoods returns the loaded food catalog in file order, optionally
// filtered by a case-insensitive substring of the name.
// GET /api/foods?q=... (public).
func (h *Handler) listFoods(c *gin.Context) {
	foods := h.catalog.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
}

// lookupFood previews the log entry that would be stored for name and grams
// without touching the food log.
// GET /api/foods/lookup?name=...&grams=... (public, grams defaults to 100).
func (h *Handler) lookupFood(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		apiError(c, http.StatusBadRequest, "name query param is required")
		return
	}
	grams := 100.0
	if s := c.Query("grams"); s != "" {
		g, err := strconv.ParseFloat(s, 64)
		if err != nil || !(g > 0) || g > maxQuantityGrams {
			apiError(c, http.StatusBadRequest, fmt.Sprintf("grams must be a number greater than 0 and at most %d", maxQuantityGrams))
			return
		}
		grams = g
	}

	resp := foodLookupResponse{Entry: nutrition.NewLogEntry(name, grams, h.catalog)}
	if food, ok := h.catalog.Lookup(name); ok {
		resp.Food = &food
	}
	c.JSON(http.StatusOK, resp)
}
