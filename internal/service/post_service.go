package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, ext string) (string, error)
}

// PostService handles blog post operations
type PostService struct {
	postRepo repository.PostRepository
	uploader ImageUploader
}

// NewPostService creates a new PostService. uploader may be nil when image
// storage is not configured.
func NewPostService(postRepo repository.PostRepository, uploader ImageUploader) *PostService {
	return &PostService{
		postRepo: postRepo,
		uploader: uploader,
	}
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context) ([]*models.PostWithAuthor, error) {
	return s.postRepo.ListPublished(ctx)
}

// GetPublishedBySlug returns the newest published post with slug.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	return s.postRepo.GetPublishedBySlug(ctx, slug)
}

// ListByAuthor returns every post written by authorID, drafts included.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]*models.PostWithAuthor, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

// ListAll returns every post.
func (s *PostService) ListAll(ctx context.Context) ([]*models.PostWithAuthor, error) {
	return s.postRepo.ListAll(ctx)
}

// GetByID returns a post regardless of its published state.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetForEdit returns a post for its author or an admin.
func (s *PostService) GetForEdit(ctx context.Context, actor models.Principal, id int64) (*models.PostWithAuthor, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !actor.Owns(post.AuthorID) {
		return nil, utils.NewForbiddenError(constants.MsgPostEditForbidden)
	}

	return post, nil
}

// Create stores a new unpublished post written by actor.
func (s *PostService) Create(ctx context.Context, actor models.Principal, req *models.PostCreate) (*models.Post, error) {
	post := &models.Post{
		Title:           req.Title,
		Slug:            slugFor(req.Title),
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		ImageURL:        req.ImageURL,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		AuthorID:        actor.ID,
		Published:       false,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Info().
		Int64("post_id", post.ID).
		Int64("author_id", actor.ID).
		Str("slug", post.Slug).
		Msg("Post created")

	return post, nil
}

// Update applies a partial edit. Changing the title regenerates the slug; an
// empty title leaves the stored one in place.
// Ownership is checked by the router before this runs.
func (s *PostService) Update(ctx context.Context, id int64, req *models.PostUpdate) (*models.Post, error) {
	if req.Title != nil && *req.Title == "" {
		req.Title = nil
	}

	slug := ""
	if req.Title != nil {
		slug = slugFor(*req.Title)
	}

	return s.postRepo.Update(ctx, id, req, slug)
}

// Delete removes a post together with its comments and likes.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.postRepo.Delete(ctx, id)
}

// UploadImage checks the type and size of an image and stores it.
func (s *PostService) UploadImage(ctx context.Context, r io.Reader, size int64, contentType string) (*models.ImageUploadResponse, error) {
	if s.uploader == nil {
		return nil, utils.New(errors.New("image storage disabled"), http.StatusServiceUnavailable, constants.MsgStorageDisabled)
	}

	ext, ok := constants.AllowedImageTypes[contentType]
	if !ok {
		return nil, utils.NewBadRequestError(constants.MsgInvalidImageType)
	}
	if size > constants.MaxImageUploadSize {
		return nil, utils.NewBadRequestError(constants.MsgImageTooLarge)
	}

	url, err := s.uploader.Upload(ctx, r, size, contentType, ext)
	if err != nil {
		return nil, utils.New(fmt.Errorf("upload image: %w", err), http.StatusInternalServerError, constants.MsgImageUploadFailed)
	}

	log.Info().Str("url", url).Int64("size", size).Msg("Image uploaded")

	return &models.ImageUploadResponse{ImageURL: url}, nil
}

// slugFor derives a slug from title, falling back to "post" for titles
// without letters or digits.
func slugFor(title string) string {
	if slug := utils.Slugify(title); slug != "" {
		return slug
	}
	return "post"
}
