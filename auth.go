package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PodderInstituteBD/NutriVision/internal/store"
	apperrors "github.com/PodderInstituteBD/NutriVision/pkg/errors"
)

const profileContextKey = "profile"

// sessionMiddleware validates the Bearer token and sets the profile on the context.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		p, err := h.store.GetProfileByToken(c, token)
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			apiError(c, http.StatusUnauthorized, "invalid session")
			c.Abort()
			return
		}
		if err != nil {
			h.storeError(c, err, "failed to fetch session")
			c.Abort()
			return
		}

		c.Set(profileContextKey, p)
		c.Next()
	}
}

// currentProfile returns the profile stored by sessionMiddleware.
func currentProfile(c *gin.Context) store.ProfileRecord {
	return c.MustGet(profileContextKey).(store.ProfileRecord)
}
