package models

import (
	"time"
)

// ResetChallenge is the one-time code stored against a user.
type ResetChallenge struct {
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Expired reports whether the challenge is no longer usable at now. A code is
// still valid at the instant of its expiry.
func (c ResetChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
// A missing email gets the same answer as an unknown one.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
// Presence and length rules are checked by the reset flow so the messages
// match the documented contract.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}
