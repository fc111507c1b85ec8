package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PodderInstituteBD/NutriVision/internal/config"
	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
	"github.com/PodderInstituteBD/NutriVision/internal/store/memory"
	"github.com/PodderInstituteBD/NutriVision/internal/store/postgres"
	"github.com/PodderInstituteBD/NutriVision/internal/store/sqlite"
	"github.com/PodderInstituteBD/NutriVision/internal/store/valkeystore"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

// Handler holds shared dependencies (store, food catalog, logger) for all route handlers.
type Handler struct {
	store   store.Store
	catalog nutrition.Catalog
	logger  *slog.Logger
	now     func() time.Time // overridable for tests
}

func newHandler(s store.Store, catalog nutrition.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		store:   s,
		catalog: catalog,
		logger:  logger.With("component", "http"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storeError maps a store failure onto apiError. not_found codes become 404;
// everything else is logged and reported as 500 with fallback as the message.
func (h *Handler) storeError(c *gin.Context, err error, fallback string) {
	if apperrors.IsCode(err, apperrors.CodeNotFound) {
		apiError(c, http.StatusNotFound, apperrors.Message(err, "not found"))
		return
	}
	h.logger.Error("store operation failed", "path", c.FullPath(), "error", err)
	apiError(c, http.StatusInternalServerError, fallback)
}

// today is the handler's current calendar day in UTC.
func (h *Handler) today() time.Time {
	return store.NewDateOnly(h.now()).Time
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// openStore builds the store selected by cfg.Storage.Driver. SQLite databases
// are migrated on open; Postgres schemas are managed by cmd/migrate.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := sqlite.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return sqlite.NewRepository(db), nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepository(pool, logger), nil
	case config.DriverValkey:
		client, err := valkeystore.NewClient(cfg.ValkeyAddr)
		if err != nil {
			return nil, fmt.Errorf("create valkey client: %w", err)
		}
		s := valkeystore.NewStore(client, "nutri", cfg.SessionTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			s.Close()
			return nil, fmt.Errorf("valkey ping: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// requestLogger logs one line per request once the handler chain completes.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request completed", attrs...)
			return
		}
		logger.Info("request completed", attrs...)
	}
}

// healthz reports liveness and the number of catalog entries loaded.
// GET /healthz (public).
func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "foods": h.catalog.Len()})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/healthz", h.healthz)
	router.POST("/api/profile", h.createProfile)
	router.GET("/api/foods", h.listFoods)
	router.GET("/api/foods/lookup", h.lookupFood)

	// Session routes
	api := router.Group("/api", h.sessionMiddleware())
	api.GET("/profile", h.getProfile)
	api.DELETE("/session", h.endSession)
	api.GET("/food-log/daily", h.getDailySummary)
	api.GET("/food-log/week-summary", h.getWeekSummary)
	api.GET("/food-log/progress", h.getProgress)
	api.GET("/food-log/earliest-date", h.getEarliestLogDate)
	api.POST("/food-log/items", h.createFoodLogItem)
	api.DELETE("/food-log/items/:id", h.deleteFoodLogItem)
}

// newRouter builds the gin engine with logging and recovery middleware.
func newRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(h.logger))
	_ = router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}
