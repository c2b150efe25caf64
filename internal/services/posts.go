package services

import (
	"context"
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// PostFilter selects posts whose title contains Search, skipping Skip rows
// and returning at most Limit.
type PostFilter struct {
	Search string
	Limit  int
	Skip   int
}

func (f PostFilter) normalize() PostFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return f
}

// PostInput carries every mutable field; updates replace all of them.
type PostInput struct {
	Title     string
	Content   string
	Published bool
}

type PostService struct {
	posts PostStore
	votes VoteStore
}

func NewPostService(posts PostStore, votes VoteStore) *PostService {
	return &PostService{posts: posts, votes: votes}
}

func (s *PostService) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, filter.normalize())
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	if err := s.attachVotes(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	single := []models.Post{*post}
	if err := s.attachVotes(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		AuthorID:  author.ID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	post.Author = author
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id uint, caller *models.User, in PostInput) (*models.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(caller, post) {
		return nil, apperrors.ErrForbidden
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Published = in.Published
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	single := []models.Post{*post}
	if err := s.attachVotes(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// Delete removes the post and, through the store, every vote on it.
// Deleting an id twice fails the second time with apperrors.ErrNotFound.
func (s *PostService) Delete(ctx context.Context, id uint, caller *models.User) error {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(caller, post) {
		return apperrors.ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

func (s *PostService) attachVotes(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.votes.Counts(ctx, ids)
	if err != nil {
		return fmt.Errorf("counting votes: %w", err)
	}
	for i := range posts {
		posts[i].Votes = counts[posts[i].ID]
	}
	return nil
}
