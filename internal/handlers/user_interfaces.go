// Package handlers provides HTTP request handlers and service interfaces for the BlogSpace application.
// This file defines the service interface behind the admin user management routes.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

// UserServiceInterface defines the methods required from UserService.
// Every caller is an authenticated admin; the router enforces the role.
type UserServiceInterface interface {
	// Stats counts users by role.
	Stats(ctx context.Context) (*models.UserStats, error)

	// ListUsers returns every user, newest first.
	ListUsers(ctx context.Context) ([]models.UserSummary, error)

	// GetUser retrieves a user by their unique identifier.
	//
	// Returns:
	//   - The user if found
	//   - A 404 error if the user doesn't exist
	GetUser(ctx context.Context, id int64) (*models.UserSummary, error)

	// UpdateUser applies a partial update on behalf of actor.
	//
	// Parameters:
	//   - ctx: The context for the operation
	//   - actor: The admin performing the update
	//   - id: The unique identifier of the user to update
	//   - update: Name, email, role and password, each optional
	//
	// Returns:
	//   - The updated user
	//   - A 400 error when an admin demotes themselves or the email is taken
	//   - A 404 error if the user doesn't exist
	UpdateUser(ctx context.Context, actor models.Principal, id int64, update *models.UserAdminUpdate) (*models.UserSummary, error)

	// DeleteUser removes a user account and, by cascade, its content.
	//
	// Returns:
	//   - A 400 error when an admin deletes themselves
	//   - A 404 error if the user doesn't exist
	DeleteUser(ctx context.Context, actor models.Principal, id int64) error
}
