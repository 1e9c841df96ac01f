package models

import (
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// Comment is a reader comment on a post. UserID is its ownership field.
type Comment struct {
	ID        int64     `json:"id" db:"comment_id"`
	PostID    int64     `json:"-" db:"post_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the database table name for the Comment model.
func (c *Comment) TableName() string {
	return constants.TableComments
}

// CommentCreate is the body of POST /api/posts/{postId}/comments.
type CommentCreate struct {
	Comment string `json:"comment"`
}
