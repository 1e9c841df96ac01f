package migrations

import (
	"context"
	"database/sql"
)

// execAll runs the statements in order, stopping at the first error.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the users table.
// The reset code and its expiry are either both set or both null.
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL DEFAULT 'user',
					reset_code VARCHAR(6),
					reset_code_expiry TIMESTAMPTZ,
					credentials_version INTEGER NOT NULL DEFAULT 1,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT users_email_key UNIQUE (email),
					CONSTRAINT users_role_check CHECK (role IN ('admin', 'user')),
					CONSTRAINT users_reset_pair_check CHECK ((reset_code IS NULL) = (reset_code_expiry IS NULL))
				)
			`)
		},
	}
}

// createPostsTable creates the posts table
func createPostsTable() Migration {
	return Migration{
		Name:        "create_posts_table",
		Description: "Creates the posts table",
		TableName:   "posts",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS posts (
					post_id BIGSERIAL PRIMARY KEY,
					title VARCHAR(255) NOT NULL,
					slug VARCHAR(255) NOT NULL,
					content TEXT NOT NULL,
					excerpt TEXT,
					image_url TEXT,
					meta_title VARCHAR(255),
					meta_description TEXT,
					author_id BIGINT NOT NULL,
					published BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_posts_author FOREIGN KEY (author_id) REFERENCES users(user_id) ON DELETE CASCADE
				)
			`,
				`CREATE INDEX IF NOT EXISTS idx_posts_slug ON posts(slug)`,
				`CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id)`,
			)
		},
	}
}

// createCommentsTable creates the comments table
func createCommentsTable() Migration {
	return Migration{
		Name:        "create_comments_table",
		Description: "Creates the comments table",
		TableName:   "comments",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS comments (
					comment_id BIGSERIAL PRIMARY KEY,
					post_id BIGINT NOT NULL,
					user_id BIGINT NOT NULL,
					comment TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts(post_id) ON DELETE CASCADE,
					CONSTRAINT fk_comments_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				)
			`,
				`CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id)`,
			)
		},
	}
}

// createLikesTable creates the likes table. A user likes a post at most once.
func createLikesTable() Migration {
	return Migration{
		Name:        "create_likes_table",
		Description: "Creates the likes table",
		TableName:   "likes",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS likes (
					like_id BIGSERIAL PRIMARY KEY,
					post_id BIGINT NOT NULL,
					user_id BIGINT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_likes_post FOREIGN KEY (post_id) REFERENCES posts(post_id) ON DELETE CASCADE,
					CONSTRAINT fk_likes_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE,
					CONSTRAINT likes_post_user_key UNIQUE (post_id, user_id)
				)
			`)
		},
	}
}

// createSubscribersTable creates the newsletter subscribers table
func createSubscribersTable() Migration {
	return Migration{
		Name:        "create_subscribers_table",
		Description: "Creates the subscribers table",
		TableName:   "subscribers",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `
				CREATE TABLE IF NOT EXISTS subscribers (
					subscriber_id BIGSERIAL PRIMARY KEY,
					email VARCHAR(255) NOT NULL,
					subscribed BOOLEAN NOT NULL DEFAULT TRUE,
					verified BOOLEAN NOT NULL DEFAULT FALSE,
					verification_token VARCHAR(64),
					subscribed_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					unsubscribed_at TIMESTAMPTZ,
					CONSTRAINT subscribers_email_key UNIQUE (email)
				)
			`,
				`CREATE INDEX IF NOT EXISTS idx_subscribers_token ON subscribers(verification_token)`,
			)
		},
	}
}
