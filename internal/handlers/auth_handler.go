package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/config"
	"github.com/cpghub/cpghub-api/internal/middleware"
	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/internal/services"
)

// AuthHandler syncs identities from the auth provider and manages the
// session cookie. The sync endpoint sits behind the internal API token: the
// frontend server calls it after its own provider callback, never the
// browser directly.
type AuthHandler struct {
	service services.IdentityServiceInterface
	config  *config.Config
}

func NewAuthHandler(service services.IdentityServiceInterface, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, config: cfg}
}

// SignInRequest is the provider profile forwarded on sign-in.
type SignInRequest struct {
	ID       string `json:"id" binding:"required,max=100"`
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=255"`
	ImageURL string `json:"image_url" binding:"omitempty,max=500"`
}

// SignIn upserts the user and issues a session cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", ParseValidationErrors(err), err)
		return
	}

	user, err := h.service.SyncUser(c.Request.Context(), &models.User{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to sync user", err)
		return
	}

	token, expiresAt, err := h.service.IssueSession(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to issue session", err)
		return
	}

	ttlSeconds := int(time.Until(expiresAt).Seconds())
	middleware.SetSessionCookie(c, token, ttlSeconds,
		h.config.Session.CookieDomain, h.config.Session.CookieSecure)

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"expiresAt": expiresAt.Unix(),
	})
}

// GetSession returns the signed-in user with fresh role flags.
func (h *AuthHandler) GetSession(c *gin.Context) {
	sessionUser, err := middleware.GetSessionUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	// Role flags in the token go stale after onboarding; serve the stored
	// ones.
	user, err := h.service.GetUser(c.Request.Context(), sessionUser.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.config.Session.CookieDomain, h.config.Session.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
