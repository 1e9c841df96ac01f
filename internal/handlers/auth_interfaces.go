// Package handlers provides HTTP request handlers for the BlogSpace API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
// This interface is used by the auth handlers to interact with the authentication business logic
// without being tightly coupled to the implementation.
type AuthServiceInterface interface {
	// Register creates a new account and signs a session token for it.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - reg: Registration data (name, email, password)
	//
	// Returns:
	//   - The token and principal view of the new account
	//   - A 400 duplicate error if the email is already registered
	Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error)

	// Login verifies an email and password pair.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - creds: Email and password
	//
	// Returns:
	//   - The token and principal view of the account
	//   - An invalid credentials error for an unknown email or a wrong password
	Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error)
}

// PasswordResetServiceInterface defines the one-time code password reset flow.
type PasswordResetServiceInterface interface {
	// RequestReset issues a code when the email belongs to an account. Only
	// storage failures are returned; unknown emails are not reported.
	RequestReset(ctx context.Context, email string) error

	// ResetPassword consumes a code and replaces the password.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}
