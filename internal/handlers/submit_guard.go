package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cpghub/cpghub-api/internal/services"
	"github.com/cpghub/cpghub-api/pkg/logger"
)

// submitGuard ties entity submissions to the server-held duplicate-submission
// latch. Requests carrying a form_session_id get at most one in-flight
// submission enforced here; requests without one pass through untouched.
type submitGuard struct {
	sessions services.FormSessionServiceInterface
}

// begin takes the latch. It writes the response and returns false when the
// session is unknown or a submission is already in flight.
func (g submitGuard) begin(c *gin.Context, sessionID string) bool {
	if g.sessions == nil || sessionID == "" {
		return true
	}

	ok, err := g.sessions.BeginSubmit(sessionID)
	if err != nil {
		respondDomainError(c, err)
		return false
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "A submission for this form is already in flight",
		})
		return false
	}

	return true
}

// fail releases the latch after a failed submission so the user can retry.
func (g submitGuard) fail(sessionID string) {
	if g.sessions == nil || sessionID == "" {
		return
	}
	if err := g.sessions.FailSubmit(sessionID); err != nil {
		logger.Warn("Failed to reset submit latch",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

// complete drops the form session after a successful submission.
func (g submitGuard) complete(sessionID string) {
	if g.sessions == nil || sessionID == "" {
		return
	}
	if err := g.sessions.CompleteSubmit(sessionID); err != nil {
		logger.Warn("Failed to complete form session",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
