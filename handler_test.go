package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store/memory"
	"github.com/PodderInstituteBD/NutriVision/pkg/logger"
)

// testToday is a Wednesday; its week starts on 2026-03-02.
var testToday = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

// setupTestRouter builds the full router on an in-memory store, a two-food
// catalog, and a fixed clock. No DB needed.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := nutrition.NewCatalog([]nutrition.FoodCatalogEntry{
		{Name: "Banana", CaloriesPer100g: 89, ProteinG: 1.1, CarbsG: 22.8, FatG: 0.3},
		{Name: "White Rice", CaloriesPer100g: 130, ProteinG: 2.7, CarbsG: 28.2, FatG: 0.3},
	})
	h := newHandler(memory.New(), catalog, logger.Discard())
	h.now = func() time.Time { return testToday }
	return newRouter(h)
}

// doRequest sends method/path with an optional JSON body and bearer token.
func doRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorder body into T, failing the test on error.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

const sampleProfileBody = `{"name":"Rahim Uddin","sex":"male","age":30,"height_cm":180,"weight_kg":75,"activity_level":"moderate","diet_mode":"bulk"}`

// createTestProfile posts sampleProfileBody and returns the session token.
func createTestProfile(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/api/profile", sampleProfileBody, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[profileResponse](t, w)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]any](t, w)
	require.Equal(t, "ok", resp["status"])
	require.Equal(t, 2.0, resp["foods"])
}

func TestSessionMiddleware_RejectsMissingOrUnknownToken(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/profile", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "missing or invalid authorization header", decode[map[string]string](t, w)["error"])

	w = doRequest(router, http.MethodGet, "/api/profile", "", "not-a-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid session", decode[map[string]string](t, w)["error"])
}

// mustField returns the raw JSON of one top-level field of the response body.
func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	fields := decode[map[string]json.RawMessage](t, w)
	raw, ok := fields[name]
	require.True(t, ok, "missing field %q in %s", name, w.Body.String())
	return raw
}
