package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// memDB is an in-memory stand-in for the gorm stores, including the
// cascade and uniqueness rules the real schema enforces.
type memDB struct {
	mu         sync.Mutex
	nextUserID uint
	nextPostID uint
	users      map[uint]models.User
	posts      map[uint]models.Post
	votes      map[[2]uint]time.Time
	failWith   error
}

func newMemDB() *memDB {
	return &memDB{
		users: make(map[uint]models.User),
		posts: make(map[uint]models.Post),
		votes: make(map[[2]uint]time.Time),
	}
}

type memUsers struct{ db *memDB }
type memPosts struct{ db *memDB }
type memVotes struct{ db *memDB }

func (s memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failWith != nil {
		return nil, s.db.failWith
	}
	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s memUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failWith != nil {
		return nil, s.db.failWith
	}
	u, ok := s.db.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) Insert(ctx context.Context, email, passwordHash string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			return nil, apperrors.ErrDuplicateEmail
		}
	}
	s.db.nextUserID++
	u := models.User{ID: s.db.nextUserID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.db.users[u.ID] = u
	return &u, nil
}

func (s memUsers) Delete(ctx context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.db.users, id)
	for pid, p := range s.db.posts {
		if p.AuthorID == id {
			s.db.deletePostLocked(pid)
		}
	}
	for k := range s.db.votes {
		if k[1] == id {
			delete(s.db.votes, k)
		}
	}
	return nil
}

func (db *memDB) deletePostLocked(id uint) {
	delete(db.posts, id)
	for k := range db.votes {
		if k[0] == id {
			delete(db.votes, k)
		}
	}
}

func (s memPosts) List(ctx context.Context, f PostFilter) ([]models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Post
	for _, p := range s.db.posts {
		if strings.Contains(p.Title, f.Search) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if f.Skip >= len(out) {
		return nil, nil
	}
	out = out[f.Skip:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s memPosts) Get(ctx context.Context, id uint) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.posts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s memPosts) Create(ctx context.Context, post *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[post.AuthorID]; !ok {
		return errors.New("foreign key violation")
	}
	s.db.nextPostID++
	post.ID = s.db.nextPostID
	post.CreatedAt = time.Now()
	s.db.posts[post.ID] = *post
	return nil
}

func (s memPosts) Update(ctx context.Context, post *models.Post) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[post.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.db.posts[post.ID] = *post
	return nil
}

func (s memPosts) Delete(ctx context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[id]; !ok {
		return apperrors.ErrNotFound
	}
	s.db.deletePostLocked(id)
	return nil
}

func (s memVotes) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ok := s.db.votes[[2]uint{postID, userID}]
	return ok, nil
}

func (s memVotes) Insert(ctx context.Context, postID, userID uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint{postID, userID}
	if _, ok := s.db.votes[key]; ok {
		return apperrors.ErrConflict
	}
	s.db.votes[key] = time.Now()
	return nil
}

func (s memVotes) Delete(ctx context.Context, postID, userID uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := [2]uint{postID, userID}
	if _, ok := s.db.votes[key]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.db.votes, key)
	return nil
}

func (s memVotes) Counts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	counts := make(map[uint]int64, len(postIDs))
	for _, id := range postIDs {
		for k := range s.db.votes {
			if k[0] == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// plainHasher keeps service tests fast; bcrypt is covered in pkg/utils.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustUser(db *memDB, email string) *models.User {
	u, err := memUsers{db}.Insert(context.Background(), email, "hashed:pw")
	if err != nil {
		panic(err)
	}
	return u
}
