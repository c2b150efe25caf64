package handlers

import (
	"log/slog"

	"blogapi/internal/config"
	"blogapi/internal/services"
)

type Handler struct {
	cfg          config.Config
	logger       *slog.Logger
	authService  *services.AuthService
	postService  *services.PostService
	voteService  *services.VoteService
	auditService *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	authService *services.AuthService,
	postService *services.PostService,
	voteService *services.VoteService,
	auditService *services.AuditService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		logger:       logger,
		authService:  authService,
		postService:  postService,
		voteService:  voteService,
		auditService: auditService,
	}
}
