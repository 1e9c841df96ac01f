package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// ErrAlreadyLiked is returned by Like when the user already likes the post.
var ErrAlreadyLiked = errors.New("post already liked")

// LikeRepository defines methods for interacting with post likes.
type LikeRepository interface {
	Exists(ctx context.Context, postID, userID int64) (bool, error)
	Count(ctx context.Context, postID int64) (int64, error)
	Like(ctx context.Context, postID, userID int64) (int64, error)
	Unlike(ctx context.Context, postID, userID int64) (int64, error)
}

// PostgresLikeRepository is a PostgreSQL implementation of LikeRepository
type PostgresLikeRepository struct {
	db *database.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *database.Pool) LikeRepository {
	return &PostgresLikeRepository{
		db: db,
	}
}

// Exists reports whether userID likes postID.
func (r *PostgresLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	startTime := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{postID, userID}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// Count returns the number of likes on a post.
func (r *PostgresLikeRepository) Count(ctx context.Context, postID int64) (int64, error) {
	return countLikes(ctx, r.db, postID)
}

func countLikes(ctx context.Context, q database.Querier, postID int64) (int64, error) {
	startTime := time.Now()

	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1`

	var count int64
	err := q.QueryRowContext(ctx, query, postID).Scan(&count)

	utils.LogDBQuery(query, []interface{}{postID}, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// Like records a like and returns the new count. The unique (post_id,
// user_id) constraint turns a concurrent double like into ErrAlreadyLiked.
func (r *PostgresLikeRepository) Like(ctx context.Context, postID, userID int64) (int64, error) {
	var count int64
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		startTime := time.Now()

		query := `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`

		_, err := tx.ExecContext(ctx, query, postID, userID)

		utils.LogDBQuery(query, []interface{}{postID, userID}, time.Since(startTime), err)

		if err != nil {
			if utils.IsUniqueViolation(err) {
				return ErrAlreadyLiked
			}
			if utils.IsNotFoundError(utils.ParseError(err)) {
				return utils.NewResourceNotFoundError(constants.MsgPostNotFound)
			}
			return fmt.Errorf("failed to like post: %w", err)
		}

		count, err = countLikes(ctx, tx, postID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Unlike removes a like, if any, and returns the new count.
func (r *PostgresLikeRepository) Unlike(ctx context.Context, postID, userID int64) (int64, error) {
	var count int64
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		startTime := time.Now()

		query := `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`

		_, err := tx.ExecContext(ctx, query, postID, userID)

		utils.LogDBQuery(query, []interface{}{postID, userID}, time.Since(startTime), err)

		if err != nil {
			return fmt.Errorf("failed to unlike post: %w", err)
		}

		count, err = countLikes(ctx, tx, postID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}
