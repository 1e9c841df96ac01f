package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

var subscriberRowColumns = []string{
	"subscriber_id", "email", "subscribed", "verified", "verification_token", "subscribed_at", "unsubscribed_at",
}

func setupSubscriberRepositoryTest(t *testing.T) (*repository.PostgresSubscriberRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewSubscriberRepository(database.NewPool(db)).(*repository.PostgresSubscriberRepository)

	return repo, mock, func() {
		db.Close()
	}
}

func TestSubscriberRepository_GetByEmail(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	unsubscribedAt := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM subscribers WHERE email = \\$1").
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows(subscriberRowColumns).
			AddRow(int64(2), "reader@example.com", false, true, nil, time.Now(), unsubscribedAt))

	subscriber, err := repo.GetByEmail(context.Background(), "reader@example.com")

	require.NoError(t, err)
	assert.False(t, subscriber.Subscribed)
	assert.True(t, subscriber.Verified)
	assert.Nil(t, subscriber.VerificationToken)
	require.NotNil(t, subscriber.UnsubscribedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM subscribers").WillReturnError(sql.ErrNoRows)

	subscriber, err := repo.GetByEmail(context.Background(), "new@example.com")

	assert.Nil(t, subscriber)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestSubscriberRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	token := "abc123"
	mock.ExpectQuery("INSERT INTO subscribers \\(email, verification_token, verified\\)").
		WithArgs("new@example.com", token).
		WillReturnRows(sqlmock.NewRows(subscriberRowColumns).
			AddRow(int64(9), "new@example.com", true, false, token, time.Now(), nil))

	subscriber, err := repo.Create(context.Background(), "new@example.com", token)

	require.NoError(t, err)
	assert.Equal(t, int64(9), subscriber.ID)
	assert.True(t, subscriber.Subscribed)
	require.NotNil(t, subscriber.VerificationToken)
	assert.Equal(t, token, *subscriber.VerificationToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_Create_Duplicate(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO subscribers").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscribers_email_key"})

	_, err := repo.Create(context.Background(), "new@example.com", "abc")

	assert.True(t, utils.IsDuplicateError(err))
}

func TestSubscriberRepository_Resubscribe(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("UPDATE subscribers SET subscribed = TRUE, subscribed_at = \\$1, unsubscribed_at = NULL WHERE email = \\$2").
		WithArgs(sqlmock.AnyArg(), "reader@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Resubscribe(context.Background(), "reader@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_Unsubscribe(t *testing.T) {
	tests := []struct {
		name    string
		result  sql.Result
		err     error
		wantErr bool
	}{
		{name: "Known address", result: sqlmock.NewResult(0, 1)},
		{name: "Unknown address is ignored", result: sqlmock.NewResult(0, 0)},
		{name: "Database error", err: errors.New("down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSubscriberRepositoryTest(t)
			defer cleanup()

			exp := mock.ExpectExec("UPDATE subscribers SET subscribed = FALSE, unsubscribed_at = \\$1 WHERE email = \\$2").
				WithArgs(sqlmock.AnyArg(), "reader@example.com")
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := repo.Unsubscribe(context.Background(), "reader@example.com")

			assert.Equal(t, tt.wantErr, err != nil)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscriberRepository_Verify(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE subscribers SET verified = TRUE, verification_token = NULL WHERE verification_token = \\$1 RETURNING").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows(subscriberRowColumns).
			AddRow(int64(9), "new@example.com", true, true, nil, time.Now(), nil))

	subscriber, err := repo.Verify(context.Background(), "abc123")

	require.NoError(t, err)
	assert.True(t, subscriber.Verified)
	assert.Nil(t, subscriber.VerificationToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriberRepository_Verify_UnknownToken(t *testing.T) {
	repo, mock, cleanup := setupSubscriberRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE subscribers").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Verify(context.Background(), "nope")

	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, constants.MsgInvalidVerifyLink, err.Error())
}
