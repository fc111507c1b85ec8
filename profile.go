package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PodderInstituteBD/NutriVision/internal/nutrition"
	"github.com/PodderInstituteBD/NutriVision/internal/session"
	"github.com/PodderInstituteBD/NutriVision/internal/store"
)

// createProfile validates the body, computes metrics, and stores the profile
// with a fresh session token. Unknown sex, activity or diet mode values are
// accepted; the metrics' *_recognized flags report the fallback.
// POST /api/profile (public, returns the session token).
func (h *Handler) createProfile(c *gin.Context) {
	var body createProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	p := body.profile()
	m := nutrition.ComputeMetrics(p)

	creds, err := session.NewCredentials(p.Name)
	if err != nil {
		h.logger.Error("failed to create session credentials", "error", err)
		apiError(c, http.StatusInternalServerError, "failed to create session")
		return
	}

	record := store.NewProfileRecord(p, m)
	record.Email = creds.Email
	record.PasswordHash = creds.PasswordHash
	record.SessionToken = creds.Token

	record, err = h.store.CreateProfile(c, record)
	if err != nil {
		h.storeError(c, err, "failed to save profile")
		return
	}

	h.logger.Info("profile created", "profile_id", record.ID, "daily_target", m.DailyTarget,
		"sex_recognized", m.SexRecognized, "activity_recognized", m.ActivityRecognized,
		"diet_mode_recognized", m.DietModeRecognized)

	c.JSON(http.StatusCreated, profileResponse{Profile: record, Metrics: m, Token: creds.Token})
}

// getProfile returns the session's profile with metrics recomputed from it.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	p := currentProfile(c)
	c.JSON(http.StatusOK, profileResponse{Profile: p, Metrics: nutrition.ComputeMetrics(p.Profile())})
}

// endSession clears the session's food log. The profile row is kept so the
// token stays valid until its store expires it.
// DELETE /api/session.
func (h *Handler) endSession(c *gin.Context) {
	p := currentProfile(c)
	if err := h.store.ClearFoodLog(c, p.ID); err != nil {
		h.storeError(c, err, "failed to clear log")
		return
	}
	c.Status(http.StatusNoContent)
}
