package handlers

import (
	"errors"
	"net/http"

	"blogapi/internal/apperrors"
	"blogapi/internal/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest accepts a JSON body or an OAuth2 password-grant form, where
// the email travels as "username".
type LoginRequest struct {
	Email    string `json:"email" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, services.ActionRegister, idString(user.ID), nil, c.ClientIP())

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = notFound("user", id)
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.auditService.LogAction(nil, services.ActionLoginFailed, "", map[string]string{"email": req.Email}, c.ClientIP())
		}
		h.respondError(c, err)
		return
	}

	h.auditService.LogAction(&result.User.ID, services.ActionLogin, idString(result.User.ID), nil, c.ClientIP())

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   result.ExpiresAt.Unix(),
	})
}

func (h *Handler) LogoutUser(c *gin.Context) {
	user := currentUser(c)
	if err := h.authService.Logout(c.Request.Context(), c.GetString(bearerTokenKey)); err != nil {
		h.respondError(c, err)
		return
	}

	h.auditService.LogAction(&user.ID, services.ActionLogout, idString(user.ID), nil, c.ClientIP())

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if err := h.authService.DeleteAccount(c.Request.Context(), user); err != nil {
		h.respondError(c, err)
		return
	}

	// The user row is gone, so the entry is not linked to it.
	h.auditService.LogAction(nil, services.ActionDeleteAccount, idString(user.ID), map[string]string{"email": user.Email}, c.ClientIP())

	c.Status(http.StatusNoContent)
}
