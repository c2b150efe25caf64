package repository

import (
	"context"
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"

	"gorm.io/gorm"
)

type VoteStore struct {
	db *gorm.DB
}

func NewVoteStore(db *gorm.DB) *VoteStore {
	return &VoteStore{db: db}
}

func (s *VoteStore) Exists(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert relies on the (post_id, user_id) primary key; a duplicate pair is
// apperrors.ErrConflict.
func (s *VoteStore) Insert(ctx context.Context, postID, userID uint) error {
	vote := models.Vote{PostID: postID, UserID: userID}
	if err := s.db.WithContext(ctx).Omit("Post", "User").Create(&vote).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %d has already voted on post %d: %w", userID, postID, apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *VoteStore) Delete(ctx context.Context, postID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("vote does not exist: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (s *VoteStore) Counts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Vote{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}
