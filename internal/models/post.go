package models

import (
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// Post is a blog article. AuthorID is the ownership field checked by the
// authorization gate.
type Post struct {
	ID              int64     `json:"id" db:"post_id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	Content         string    `json:"content" db:"content"`
	Excerpt         *string   `json:"excerpt" db:"excerpt"`
	ImageURL        *string   `json:"image_url" db:"image_url"`
	MetaTitle       *string   `json:"meta_title" db:"meta_title"`
	MetaDescription *string   `json:"meta_description" db:"meta_description"`
	AuthorID        int64     `json:"author_id" db:"author_id"`
	Published       bool      `json:"published" db:"published"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the Post model.
func (p *Post) TableName() string {
	return constants.TablePosts
}

// PostWithAuthor is a post joined with its author's name.
type PostWithAuthor struct {
	Post
	AuthorName string `json:"author_name"`
}

// PostDetail is the public single-post view including the like count.
type PostDetail struct {
	PostWithAuthor
	LikeCount int64 `json:"like_count"`
}

// PostCreate is the body of POST /api/posts.
type PostCreate struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Content         string  `json:"content" validate:"required"`
	Excerpt         *string `json:"excerpt"`
	ImageURL        *string `json:"image_url"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// PostUpdate is the partial body of PUT /api/posts/{id}. Nil fields are left unchanged.
type PostUpdate struct {
	Title           *string `json:"title" validate:"omitempty,max=255"`
	Content         *string `json:"content"`
	Excerpt         *string `json:"excerpt"`
	ImageURL        *string `json:"image_url"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	Published       *bool   `json:"published"`
}

// IsEmpty reports whether the update carries no changes.
func (u *PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Excerpt == nil && u.ImageURL == nil &&
		u.MetaTitle == nil && u.MetaDescription == nil && u.Published == nil
}

// ImageUploadResponse is returned by POST /api/posts/upload.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
