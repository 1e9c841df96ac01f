package service

import (
	"context"
	"errors"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// LikeService handles post likes. A user likes a post at most once.
type LikeService struct {
	likeRepo repository.LikeRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
	}
}

// Check reports whether userID has liked postID.
func (s *LikeService) Check(ctx context.Context, postID, userID int64) (*models.LikeStatus, error) {
	liked, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &models.LikeStatus{Liked: liked}, nil
}

// Count returns the number of likes on postID.
func (s *LikeService) Count(ctx context.Context, postID int64) (*models.LikeCount, error) {
	count, err := s.likeRepo.Count(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeCount{LikeCount: count}, nil
}

// Like records a like and returns the new count.
func (s *LikeService) Like(ctx context.Context, postID, userID int64) (*models.LikeResult, error) {
	count, err := s.likeRepo.Like(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil, utils.NewBadRequestError(constants.MsgPostAlreadyLiked)
		}
		return nil, err
	}
	return &models.LikeResult{Message: constants.MsgPostLiked, LikeCount: count}, nil
}

// Unlike removes a like if present and returns the new count.
func (s *LikeService) Unlike(ctx context.Context, postID, userID int64) (*models.LikeResult, error) {
	count, err := s.likeRepo.Unlike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{Message: constants.MsgPostUnliked, LikeCount: count}, nil
}
