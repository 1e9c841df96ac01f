package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// UserService handles the admin user management operations
type UserService struct {
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	invalidator CredentialsInvalidator
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	invalidator CredentialsInvalidator,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		hasher:      hasher,
		invalidator: invalidator,
	}
}

// Stats counts users by role.
func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.userRepo.Stats(ctx)
}

// ListUsers returns every user, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}

// GetUser retrieves a single user
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.UserSummary, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}
	summary := user.Summary()
	return &summary, nil
}

// UpdateUser applies an admin's partial update to the user with id.
//
// An admin cannot change their own role away from admin. A password shorter
// than the minimum length is ignored. Changing the role or the password
// bumps the credentials version, which invalidates the user's tokens.
func (s *UserService) UpdateUser(ctx context.Context, actor models.Principal, id int64, req *models.UserAdminUpdate) (*models.UserSummary, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}

	if actor.Owns(id) && req.Role != nil && !req.Role.IsAdmin() {
		return nil, utils.NewBadRequestError(constants.MsgCannotDemoteSelf)
	}

	update := &repository.UserUpdate{}
	if req.Name != "" {
		update.Name = &req.Name
	}
	if req.Email != "" {
		update.Email = &req.Email
	}
	if req.Role != nil && *req.Role != existing.Role {
		update.Role = req.Role
		update.BumpCredentialsVersion = true
	}
	if req.Password != "" && utils.ValidatePassword(req.Password) == nil {
		hash, err := s.hasher.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &hash
		update.BumpCredentialsVersion = true
	}

	if update.IsEmpty() {
		summary := existing.Summary()
		return &summary, nil
	}

	user, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		if utils.IsDuplicateError(err) {
			return nil, utils.NewDuplicateBadRequestError(constants.MsgEmailExists)
		}
		return nil, userNotFound(err)
	}

	if update.BumpCredentialsVersion && s.invalidator != nil {
		s.invalidator.Invalidate(ctx, id)
	}

	utils.LogAuth(constants.LogEventUserUpdate, id, user.Email, true, "")
	log.Info().
		Int64("actor_id", actor.ID).
		Int64("user_id", id).
		Bool("role_changed", update.Role != nil).
		Bool("password_changed", update.PasswordHash != nil).
		Msg("User updated by admin")

	summary := user.Summary()
	return &summary, nil
}

// DeleteUser removes the user with id. An admin cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor models.Principal, id int64) error {
	if actor.Owns(id) {
		return utils.NewBadRequestError(constants.MsgCannotDeleteSelf)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return userNotFound(err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, id)
	}

	log.Info().
		Int64("actor_id", actor.ID).
		Int64("user_id", id).
		Str("event", constants.LogEventUserDelete).
		Msg("User deleted by admin")

	return nil
}

// userNotFound replaces a repository not-found error with the user-facing message.
func userNotFound(err error) error {
	if utils.IsNotFoundError(err) {
		return utils.NewResourceNotFoundError(constants.MsgUserNotFound)
	}
	return err
}
