package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/services"
	"blogapi/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// brokenDenylist stands in for a redis that went away after startup.
type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis: connection refused")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

type testEnv struct {
	h      *Handler
	db     *gorm.DB
	router *gin.Engine
	tokens *services.TokenService
}

// setupTestHandler wires the real stores over an in-memory sqlite database.
// A nil denylist leaves logout unavailable, as when redis is down.
func setupTestHandler(t *testing.T, denylist services.TokenDenylist) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{DatabaseURL: "sqlite://:memory:", CORSOrigin: "*"}
	db, err := repository.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := repository.NewUserStore(db)
	posts := repository.NewPostStore(db)
	votes := repository.NewVoteStore(db)
	tokens := services.NewTokenService(testSecret, time.Hour)

	h := NewHandler(
		cfg,
		logger,
		services.NewAuthService(users, utils.BcryptHasher{Cost: bcrypt.MinCost}, tokens, denylist, logger),
		services.NewPostService(posts, votes),
		services.NewVoteService(posts, votes),
		services.NewAuditService(db, logger),
	)
	return &testEnv{h: h, db: db, router: h.SetupRouter(), tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers email and returns the new user's id and a fresh token.
func (e *testEnv) signup(t *testing.T, email string) (uint, string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/users", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID uint `json:"id"`
	}
	decode(t, w, &user)

	w = e.do(t, http.MethodPost, "/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok TokenResponse
	decode(t, w, &tok)
	return user.ID, tok.AccessToken
}

func (e *testEnv) createPost(t *testing.T, token, title string) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/posts", token, gin.H{"title": title, "content": "body of " + title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post struct {
		ID uint `json:"id"`
	}
	decode(t, w, &post)
	return post.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}
