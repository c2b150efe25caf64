package services

import (
	"context"
	"time"

	"blogapi/internal/models"
)

// UserStore persists accounts. Lookups return apperrors.ErrNotFound when no
// row matches; Insert returns apperrors.ErrDuplicateEmail on a unique
// violation.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Insert(ctx context.Context, email, passwordHash string) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// PostStore persists posts. Get, Update and Delete return
// apperrors.ErrNotFound when the id does not exist.
type PostStore interface {
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Get(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// VoteStore persists (post, user) vote pairs. The pair must be unique at the
// storage layer: Insert returns apperrors.ErrConflict when it already
// exists, Delete returns apperrors.ErrNotFound when it does not.
type VoteStore interface {
	Exists(ctx context.Context, postID, userID uint) (bool, error)
	Insert(ctx context.Context, postID, userID uint) error
	Delete(ctx context.Context, postID, userID uint) error
	Counts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// TokenDenylist remembers revoked token ids until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
