package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cpghub/cpghub-api/internal/models"
	"github.com/cpghub/cpghub-api/pkg/jwt"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "cpghub_session"

	// SessionUserContextKey is the key used to store the session user in
	// context
	SessionUserContextKey = "session_user"
)

var (
	ErrUserNotFound = errors.New("session user not found in context")
	ErrInvalidUser  = errors.New("invalid session user type")
)

// UserSessionMiddleware validates the JWT session cookie and adds the session
// user to the context.
func UserSessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			_ = c.Error(fmt.Errorf("missing session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			clearSessionCookie(c, cookieDomain, cookieSecure)

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		roles := make(models.RoleSet, len(claims.Roles))
		for _, r := range claims.Roles {
			roles.Add(models.Role(r))
		}

		user := &models.User{
			ID:      claims.UserID,
			Name:    claims.Name,
			Email:   claims.Email,
			IsAdmin: claims.Admin,
			Roles:   roles,
		}

		c.Set(SessionUserContextKey, user)
		c.Next()
	}
}

// GetSessionUser extracts the session user from context.
func GetSessionUser(c *gin.Context) (*models.User, error) {
	val, exists := c.Get(SessionUserContextKey)
	if !exists {
		return nil, ErrUserNotFound
	}

	user, ok := val.(*models.User)
	if !ok {
		return nil, ErrInvalidUser
	}

	return user, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
