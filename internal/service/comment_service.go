package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// CommentService handles post comments
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
	}
}

// ListByPost returns the comments on postID, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// Create adds a comment by actor. Surrounding whitespace is trimmed and an
// empty comment is rejected.
func (s *CommentService) Create(ctx context.Context, actor models.Principal, postID int64, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.NewBadRequestError(constants.MsgCommentEmpty)
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  actor.ID,
		Comment: text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if comment.UserName == "" {
		comment.UserName = constants.MsgDefaultAuthorName
	}

	log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", postID).
		Int64("user_id", actor.ID).
		Msg("Comment created")

	return comment, nil
}

// Delete removes a comment. Ownership is checked by the router.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.commentRepo.Delete(ctx, id)
}
