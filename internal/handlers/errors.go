package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blogapi/internal/apperrors"
	"blogapi/internal/middleware"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Anything unexpected
// is logged and hidden behind a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		h.unauthorized(c)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to perform requested action"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRevocationUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Token revocation is unavailable"})
	default:
		h.logger.Error("Request failed", "path", c.FullPath(), "request_id", c.GetString(middleware.RequestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func notFound(kind string, id uint) error {
	return &notFoundError{kind: kind, id: id}
}

type notFoundError struct {
	kind string
	id   uint
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with id: %d was not found", e.kind, e.id)
}

func (e *notFoundError) Unwrap() error { return apperrors.ErrNotFound }

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
