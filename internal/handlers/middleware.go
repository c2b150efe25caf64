package handlers

import (
	"errors"
	"strings"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	currentUserKey  = "current_user"
	bearerTokenKey  = "bearer_token"
	bearerAuthScope = "bearer"
)

// AuthRequired resolves the Authorization bearer token to a user and aborts
// with 401 when it cannot.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.unauthorized(c)
			c.Abort()
			return
		}

		user, err := h.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				h.logger.Debug("Authentication failed", "error", err)
			}
			h.respondError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set(bearerTokenKey, token)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerAuthScope) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser is only valid behind AuthRequired.
func currentUser(c *gin.Context) *models.User {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}
