package services

import (
	"errors"
	"fmt"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of an access token.
type Claims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID *uint `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID that expires after the configured TTL.
func (s *TokenService) Issue(userID uint) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := tokenClaims{
		UserID: &userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.NewTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, algorithm and expiry of raw.
// It fails with apperrors.ErrExpiredToken, apperrors.ErrMissingClaim or
// apperrors.ErrInvalidToken.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	if claims.UserID == nil {
		return nil, apperrors.ErrMissingClaim
	}

	return &Claims{
		UserID:    *claims.UserID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
