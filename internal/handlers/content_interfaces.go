package handlers

import (
	"context"
	"io"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

// PostServiceInterface defines the methods required from PostService.
type PostServiceInterface interface {
	ListPublished(ctx context.Context) ([]*models.PostWithAuthor, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.PostDetail, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.PostWithAuthor, error)
	ListAll(ctx context.Context) ([]*models.PostWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error)

	// GetForEdit returns the post when actor is its author or an admin.
	GetForEdit(ctx context.Context, actor models.Principal, id int64) (*models.PostWithAuthor, error)

	Create(ctx context.Context, actor models.Principal, req *models.PostCreate) (*models.Post, error)
	Update(ctx context.Context, id int64, req *models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id int64) error

	// UploadImage stores an image and returns its public URL.
	UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (*models.ImageUploadResponse, error)
}

// CommentServiceInterface defines the methods required from CommentService.
type CommentServiceInterface interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Create(ctx context.Context, actor models.Principal, postID int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// LikeServiceInterface defines the methods required from LikeService.
type LikeServiceInterface interface {
	Check(ctx context.Context, postID, userID int64) (*models.LikeStatus, error)
	Count(ctx context.Context, postID int64) (*models.LikeCount, error)
	Like(ctx context.Context, postID, userID int64) (*models.LikeResult, error)
	Unlike(ctx context.Context, postID, userID int64) (*models.LikeResult, error)
}

// NewsletterServiceInterface defines the methods required from NewsletterService.
type NewsletterServiceInterface interface {
	// Subscribe reports created=true only when a new subscriber was stored.
	Subscribe(ctx context.Context, email string) (*models.SubscribeResult, bool, error)
	Unsubscribe(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) error
}
