package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// PostRepository defines methods for interacting with blog posts.
type PostRepository interface {
	ListPublished(ctx context.Context) ([]*models.PostWithAuthor, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.PostDetail, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*models.PostWithAuthor, error)
	ListAll(ctx context.Context) ([]*models.PostWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id int64, update *models.PostUpdate, slug string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

const postColumns = `p.post_id, p.title, p.slug, p.content, p.excerpt, p.image_url, p.meta_title, p.meta_description, p.author_id, p.published, p.created_at, p.updated_at`

const postReturningColumns = `post_id, title, slug, content, excerpt, image_url, meta_title, meta_description, author_id, published, created_at, updated_at`

// postWithAuthorQuery selects posts joined with the author's name. The
// caller appends the WHERE and ORDER BY clauses.
const postWithAuthorQuery = `SELECT ` + postColumns + `, u.name FROM posts p JOIN users u ON u.user_id = p.author_id`

// PostgresPostRepository is a PostgreSQL implementation of PostRepository
type PostgresPostRepository struct {
	db *database.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *database.Pool) PostRepository {
	return &PostgresPostRepository{
		db: db,
	}
}

func postFields(p *models.Post) []interface{} {
	return []interface{}{
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.ImageURL,
		&p.MetaTitle, &p.MetaDescription, &p.AuthorID, &p.Published,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func scanPostWithAuthor(row interface{ Scan(...interface{}) error }) (*models.PostWithAuthor, error) {
	post := &models.PostWithAuthor{}
	err := row.Scan(append(postFields(&post.Post), &post.AuthorName)...)
	return post, err
}

func (r *PostgresPostRepository) listPosts(ctx context.Context, query string, args ...interface{}) ([]*models.PostWithAuthor, error) {
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	posts := make([]*models.PostWithAuthor, 0)
	for rows.Next() {
		post, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// ListPublished returns published posts, newest first.
func (r *PostgresPostRepository) ListPublished(ctx context.Context) ([]*models.PostWithAuthor, error) {
	return r.listPosts(ctx, postWithAuthorQuery+` WHERE p.published = TRUE ORDER BY p.created_at DESC`)
}

// GetPublishedBySlug returns the newest published post with the slug along
// with its like count. Slugs are not unique.
func (r *PostgresPostRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	startTime := time.Now()

	query := `SELECT ` + postColumns + `, u.name,
            (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id)
        FROM posts p JOIN users u ON u.user_id = p.author_id
        WHERE p.slug = $1 AND p.published = TRUE
        ORDER BY p.created_at DESC
        LIMIT 1`

	detail := &models.PostDetail{}
	dest := append(postFields(&detail.Post), &detail.AuthorName, &detail.LikeCount)
	err := r.db.QueryRowContext(ctx, query, slug).Scan(dest...)

	utils.LogDBQuery(query, []interface{}{slug}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewResourceNotFoundError(constants.MsgPostNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return detail, nil
}

// ListByAuthor returns every post written by authorID, drafts included.
func (r *PostgresPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*models.PostWithAuthor, error) {
	return r.listPosts(ctx, postWithAuthorQuery+` WHERE p.author_id = $1 ORDER BY p.created_at DESC`, authorID)
}

// ListAll returns every post regardless of status.
func (r *PostgresPostRepository) ListAll(ctx context.Context) ([]*models.PostWithAuthor, error) {
	return r.listPosts(ctx, postWithAuthorQuery+` ORDER BY p.created_at DESC`)
}

// GetByID retrieves a post by ID regardless of status.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.PostWithAuthor, error) {
	startTime := time.Now()

	query := postWithAuthorQuery + ` WHERE p.post_id = $1`

	post, err := scanPostWithAuthor(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewResourceNotFoundError(constants.MsgPostNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// Create adds a new post
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	startTime := time.Now()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts (title, slug, content, excerpt, image_url, meta_title, meta_description, author_id, published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING post_id
    `

	args := []interface{}{
		post.Title, post.Slug, post.Content, post.Excerpt, post.ImageURL,
		post.MetaTitle, post.MetaDescription, post.AuthorID, post.Published,
		post.CreatedAt, post.UpdatedAt,
	}

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	log.Info().
		Int64("post_id", post.ID).
		Int64("author_id", post.AuthorID).
		Str("slug", post.Slug).
		Msg("Post created")

	return nil
}

// Update applies a partial update. A non-empty slug replaces the stored one.
func (r *PostgresPostRepository) Update(ctx context.Context, id int64, update *models.PostUpdate, slug string) (*models.Post, error) {
	startTime := time.Now()

	setClauses := make([]string, 0, 9)
	args := make([]interface{}, 0, 10)
	next := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		next("title", *update.Title)
	}
	if slug != "" {
		next("slug", slug)
	}
	if update.Content != nil {
		next("content", *update.Content)
	}
	if update.Excerpt != nil {
		next("excerpt", *update.Excerpt)
	}
	if update.ImageURL != nil {
		next("image_url", *update.ImageURL)
	}
	if update.MetaTitle != nil {
		next("meta_title", *update.MetaTitle)
	}
	if update.MetaDescription != nil {
		next("meta_description", *update.MetaDescription)
	}
	if update.Published != nil {
		next("published", *update.Published)
	}
	next("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE post_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), postReturningColumns)

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(postFields(post)...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewResourceNotFoundError(constants.MsgPostNotFound)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	log.Info().Int64("post_id", id).Msg("Post updated")

	return post, nil
}

// Delete removes a post. Comments and likes cascade.
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewResourceNotFoundError(constants.MsgPostNotFound)
	}

	log.Info().Int64("post_id", id).Msg("Post deleted")

	return nil
}

// GetOwnerID loads only the author of a post.
func (r *PostgresPostRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	startTime := time.Now()

	query := `SELECT author_id FROM posts WHERE post_id = $1`

	var authorID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&authorID)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.NewResourceNotFoundError(constants.MsgPostNotFound)
		}
		return 0, fmt.Errorf("failed to get post owner: %w", err)
	}

	return authorID, nil
}
