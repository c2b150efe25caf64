package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"blogapi/internal/models"

	"gorm.io/gorm"
)

const (
	ActionRegister      = "REGISTER"
	ActionLogin         = "LOGIN"
	ActionLoginFailed   = "LOGIN_FAILED"
	ActionLogout        = "LOGOUT"
	ActionDeleteAccount = "DELETE_ACCOUNT"
	ActionCreatePost    = "CREATE_POST"
	ActionUpdatePost    = "UPDATE_POST"
	ActionDeletePost    = "DELETE_POST"
	ActionVoteAdd       = "VOTE_ADD"
	ActionVoteRemove    = "VOTE_REMOVE"
)

const auditBufferSize = 100

type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, auditBufferSize),
	}
}

// Start drains queued entries into the database until ctx is cancelled.
func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

// LogAction queues an entry without blocking; it is dropped when the buffer
// is full.
func (s *AuditService) LogAction(userID *uint, action, entityID string, details interface{}, ip string) {
	var detailText string
	if details != nil {
		detailBytes, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("Failed to encode audit details", "action", action, "error", err)
		} else {
			detailText = string(detailBytes)
		}
	}

	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		Details:   detailText,
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}
