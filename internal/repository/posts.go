package repository

import (
	"context"
	"errors"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/services"

	"gorm.io/gorm"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) List(ctx context.Context, filter services.PostFilter) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Preload("Author").Order("id asc")
	if filter.Search != "" {
		q = q.Where(titleContains(s.db.Dialector.Name()), filter.Search)
	}

	var posts []models.Post
	if err := q.Limit(filter.Limit).Offset(filter.Skip).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// titleContains is a case-sensitive substring match with no wildcard
// characters, so "%" and "_" in a search are literal.
func titleContains(dialect string) string {
	switch dialect {
	case "postgres":
		return "strpos(title, ?) > 0"
	default:
		return "instr(title, ?) > 0"
	}
}

func (s *PostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Omit("Author").Create(post).Error
}

// Update overwrites title, content and published; zero values included.
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	result := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":     post.Title,
		"content":   post.Content,
		"published": post.Published,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes the post; its votes go through ON DELETE CASCADE.
func (s *PostStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
