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

// SubscriberRepository defines methods for interacting with newsletter subscribers.
type SubscriberRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, email, verificationToken string) (*models.Subscriber, error)
	Resubscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) (*models.Subscriber, error)
}

const subscriberColumns = `subscriber_id, email, subscribed, verified, verification_token, subscribed_at, unsubscribed_at`

// PostgresSubscriberRepository is a PostgreSQL implementation of SubscriberRepository
type PostgresSubscriberRepository struct {
	db *database.Pool
}

// NewSubscriberRepository creates a new SubscriberRepository
func NewSubscriberRepository(db *database.Pool) SubscriberRepository {
	return &PostgresSubscriberRepository{
		db: db,
	}
}

func scanSubscriber(row interface{ Scan(...interface{}) error }) (*models.Subscriber, error) {
	s := &models.Subscriber{}
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.Subscribed,
		&s.Verified,
		&s.VerificationToken,
		&s.SubscribedAt,
		&s.UnsubscribedAt,
	)
	return s, err
}

// GetByEmail retrieves a subscriber by exact email
func (r *PostgresSubscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	startTime := time.Now()

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email = $1`

	subscriber, err := scanSubscriber(r.db.QueryRowContext(ctx, query, email))

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Subscriber", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return subscriber, nil
}

// Create adds an unverified subscriber
func (r *PostgresSubscriberRepository) Create(ctx context.Context, email, verificationToken string) (*models.Subscriber, error) {
	startTime := time.Now()

	query := `
        INSERT INTO subscribers (email, verification_token, verified)
        VALUES ($1, $2, FALSE)
        RETURNING ` + subscriberColumns

	subscriber, err := scanSubscriber(r.db.QueryRowContext(ctx, query, email, verificationToken))

	utils.LogDBQuery(query, []interface{}{email, verificationToken}, time.Since(startTime), err)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.NewDuplicateError("Subscriber", "email", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	log.Info().
		Int64("subscriber_id", subscriber.ID).
		Str("email", utils.MaskEmail(email)).
		Msg("Subscriber added")

	return subscriber, nil
}

// Resubscribe reactivates a previously unsubscribed address
func (r *PostgresSubscriberRepository) Resubscribe(ctx context.Context, email string) error {
	startTime := time.Now()

	query := `
        UPDATE subscribers
        SET subscribed = TRUE, subscribed_at = $1, unsubscribed_at = NULL
        WHERE email = $2
    `

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, now, email)

	utils.LogDBQuery(query, []interface{}{now, email}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to resubscribe: %w", err)
	}

	return nil
}

// Unsubscribe marks the address as unsubscribed. Unknown addresses are ignored.
func (r *PostgresSubscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	startTime := time.Now()

	query := `
        UPDATE subscribers
        SET subscribed = FALSE, unsubscribed_at = $1
        WHERE email = $2
    `

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, now, email)

	utils.LogDBQuery(query, []interface{}{now, email}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// Verify marks the subscriber holding token as verified and clears the
// token, so a link works once.
func (r *PostgresSubscriberRepository) Verify(ctx context.Context, token string) (*models.Subscriber, error) {
	startTime := time.Now()

	query := `
        UPDATE subscribers
        SET verified = TRUE, verification_token = NULL
        WHERE verification_token = $1
        RETURNING ` + subscriberColumns

	subscriber, err := scanSubscriber(r.db.QueryRowContext(ctx, query, token))

	utils.LogDBQuery(query, []interface{}{token}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewResourceNotFoundError(constants.MsgInvalidVerifyLink)
		}
		return nil, fmt.Errorf("failed to verify subscriber: %w", err)
	}

	return subscriber, nil
}
