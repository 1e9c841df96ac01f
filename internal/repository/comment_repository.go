package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// CommentRepository defines methods for interacting with post comments.
type CommentRepository interface {
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// PostgresCommentRepository is a PostgreSQL implementation of CommentRepository
type PostgresCommentRepository struct {
	db *database.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *database.Pool) CommentRepository {
	return &PostgresCommentRepository{
		db: db,
	}
}

// ListByPost returns the comments on a post with their authors' names, newest first.
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	startTime := time.Now()

	query := `
        SELECT c.comment_id, c.post_id, c.user_id, c.comment, c.created_at, u.name
        FROM comments c JOIN users u ON u.user_id = c.user_id
        WHERE c.post_id = $1
        ORDER BY c.created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query, postID)

	utils.LogDBQuery(query, []interface{}{postID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Create stores a comment and fills in its id, timestamp and author name.
// A missing post surfaces as a not-found error.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	startTime := time.Now()

	query := `
        WITH inserted AS (
            INSERT INTO comments (post_id, user_id, comment)
            VALUES ($1, $2, $3)
            RETURNING comment_id, user_id, created_at
        )
        SELECT i.comment_id, i.created_at, COALESCE(u.name, '')
        FROM inserted i LEFT JOIN users u ON u.user_id = i.user_id
    `

	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Comment).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UserName)

	utils.LogDBQuery(query, []interface{}{comment.PostID, comment.UserID, comment.Comment}, time.Since(startTime), err)

	if err != nil {
		if appErr := utils.ParseError(err); utils.IsNotFoundError(appErr) {
			return utils.NewResourceNotFoundError(constants.MsgPostNotFound)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	log.Info().
		Int64("comment_id", comment.ID).
		Int64("post_id", comment.PostID).
		Int64("user_id", comment.UserID).
		Msg("Comment created")

	return nil
}

// Delete removes a comment
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM comments WHERE comment_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewResourceNotFoundError(constants.MsgCommentNotFound)
	}

	return nil
}

// GetOwnerID loads only the author of a comment.
func (r *PostgresCommentRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	startTime := time.Now()

	query := `SELECT user_id FROM comments WHERE comment_id = $1`

	var userID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&userID)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.NewResourceNotFoundError(constants.MsgCommentNotFound)
		}
		return 0, fmt.Errorf("failed to get comment owner: %w", err)
	}

	return userID, nil
}
