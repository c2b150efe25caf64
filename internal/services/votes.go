package services

import (
	"context"
	"fmt"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
)

// Direction is the requested vote transition. Down retracts an existing
// vote; there is no negative vote.
type Direction int

const (
	DirectionDown Direction = 0
	DirectionUp   Direction = 1
)

type VoteService struct {
	posts PostStore
	votes VoteStore
}

func NewVoteService(posts PostStore, votes VoteStore) *VoteService {
	return &VoteService{posts: posts, votes: votes}
}

// Apply toggles user's vote on postID.
//
// A missing post is apperrors.ErrNotFound whatever the direction. Up on an
// existing vote is apperrors.ErrConflict; Down without a vote is
// apperrors.ErrNotFound.
func (s *VoteService) Apply(ctx context.Context, postID uint, user *models.User, dir Direction) error {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return err
	}

	switch dir {
	case DirectionUp:
		voted, err := s.votes.Exists(ctx, postID, user.ID)
		if err != nil {
			return fmt.Errorf("checking vote: %w", err)
		}
		if voted {
			return fmt.Errorf("user %d has already voted on post %d: %w", user.ID, postID, apperrors.ErrConflict)
		}
		// A concurrent insert for the same pair still surfaces as ErrConflict.
		return s.votes.Insert(ctx, postID, user.ID)
	case DirectionDown:
		return s.votes.Delete(ctx, postID, user.ID)
	default:
		return fmt.Errorf("unknown vote direction %d", dir)
	}
}

func (s *VoteService) Count(ctx context.Context, postID uint) (int64, error) {
	counts, err := s.votes.Counts(ctx, []uint{postID})
	if err != nil {
		return 0, err
	}
	return counts[postID], nil
}
