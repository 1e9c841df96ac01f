package models

import (
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID                int64      `json:"id" db:"subscriber_id"`
	Email             string     `json:"email" db:"email"`
	Subscribed        bool       `json:"subscribed" db:"subscribed"`
	Verified          bool       `json:"verified" db:"verified"`
	VerificationToken *string    `json:"-" db:"verification_token"`
	SubscribedAt      time.Time  `json:"subscribed_at" db:"subscribed_at"`
	UnsubscribedAt    *time.Time `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
}

// TableName returns the database table name for the Subscriber model.
func (s *Subscriber) TableName() string {
	return constants.TableSubscribers
}

// NewsletterRequest is the body of the subscribe and unsubscribe endpoints.
type NewsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeResult is the body returned by POST /api/newsletter/subscribe.
type SubscribeResult struct {
	Message           string `json:"message"`
	AlreadySubscribed bool   `json:"alreadySubscribed,omitempty"`
}
