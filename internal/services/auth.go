package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// MaxPasswordBytes is bcrypt's input limit, counted in bytes, not runes.
const MaxPasswordBytes = 72

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *models.User
}

// AuthService owns registration, login and the bearer-token guard.
type AuthService struct {
	users    UserStore
	hasher   PasswordHasher
	tokens   *TokenService
	denylist TokenDenylist
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the account flows. denylist may be nil, in which
// case tokens cannot be revoked before they expire.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens *TokenService, denylist TokenDenylist, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", apperrors.ErrInvalidInput, MaxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.Insert(ctx, email, hash)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for an access token. An unknown email and a
// wrong password both yield apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Spend the same hashing work as a real mismatch.
			s.hasher.Verify(password, s.dummy())
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Authenticate resolves a raw bearer token to its user. Every token problem,
// a revoked token, and a user that no longer exists all come back wrapped in
// apperrors.ErrUnauthenticated. A denylist that cannot be reached is
// apperrors.ErrRevocationUnavailable.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// Fail closed: a token we cannot check is not accepted.
			s.logger.Warn("Token revocation check failed", "error", err)
			return nil, fmt.Errorf("%w: %w", apperrors.ErrRevocationUnavailable, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", apperrors.ErrUnauthenticated)
		}
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Debug("Token references missing user", "user_id", claims.UserID)
			return nil, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

// Logout revokes raw until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if s.denylist == nil {
		return apperrors.ErrRevocationUnavailable
	}

	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}

	ttl := claims.ExpiresAt.Sub(s.tokens.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// DeleteAccount removes user; the store cascades to their posts and votes.
func (s *AuthService) DeleteAccount(ctx context.Context, user *models.User) error {
	return s.users.Delete(ctx, user.ID)
}

// dummy returns a hash of the hasher's own format for timing-equalized
// misses. It is computed once, on first use.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalizer")
		if err != nil {
			s.logger.Warn("Failed to prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
