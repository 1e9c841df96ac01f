package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

func setupLikeRepositoryTest(t *testing.T) (*repository.PostgresLikeRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewLikeRepository(database.NewPool(db)).(*repository.PostgresLikeRepository)

	return repo, mock, func() {
		db.Close()
	}
}

func TestLikeRepository_Exists(t *testing.T) {
	repo, mock, cleanup := setupLikeRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM likes WHERE post_id = \\$1 AND user_id = \\$2\\)").
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	liked, err := repo.Exists(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.True(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Count(t *testing.T) {
	repo, mock, cleanup := setupLikeRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM likes WHERE post_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	count, err := repo.Count(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Like(t *testing.T) {
	repo, mock, cleanup := setupLikeRepositoryTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO likes \\(post_id, user_id\\) VALUES \\(\\$1, \\$2\\)").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM likes").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectCommit()

	count, err := repo.Like(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Like_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checkFn func(t *testing.T, err error)
	}{
		{
			name: "Already liked via pq",
			err:  &pq.Error{Code: "23505", Constraint: "likes_post_user_key"},
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, repository.ErrAlreadyLiked)
			},
		},
		{
			name: "Already liked via pgx",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "likes_post_user_key"},
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, repository.ErrAlreadyLiked)
			},
		},
		{
			name: "Missing post",
			err:  &pq.Error{Code: "23503", Constraint: "fk_likes_post"},
			checkFn: func(t *testing.T, err error) {
				assert.True(t, utils.IsNotFoundError(err))
			},
		},
		{
			name: "Database error",
			err:  errors.New("connection lost"),
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to like post")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLikeRepositoryTest(t)
			defer cleanup()

			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO likes").WillReturnError(tt.err)
			mock.ExpectRollback()

			count, err := repo.Like(context.Background(), 7, 3)

			assert.Zero(t, count)
			tt.checkFn(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLikeRepository_Unlike(t *testing.T) {
	repo, mock, cleanup := setupLikeRepositoryTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes WHERE post_id = \\$1 AND user_id = \\$2").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM likes").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectCommit()

	count, err := repo.Unlike(context.Background(), 7, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_Unlike_CountFails(t *testing.T) {
	repo, mock, cleanup := setupLikeRepositoryTest(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM likes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.Unlike(context.Background(), 7, 3)

	assert.Contains(t, err.Error(), "failed to count likes")
	assert.NoError(t, mock.ExpectationsWereMet())
}
