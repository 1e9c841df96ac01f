package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, encodedHash string) (bool, error)
}

// CredentialsInvalidator drops any cached credentials state for a user whose
// credentials version has just been bumped.
type CredentialsInvalidator interface {
	Invalidate(ctx context.Context, userID int64)
}

// dummyPassword is hashed once so that a login for an unknown email costs one
// password verification, the same as a login with a wrong password.
const dummyPassword = "blogspace-login-placeholder"

// AuthService handles registration and login
type AuthService struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	tokens    auth.TokenIssuer
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens auth.TokenIssuer,
) *AuthService {
	dummyHash, err := hasher.HashPassword(dummyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prepare placeholder password hash")
	}

	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

// Register creates a new account with the user role and signs a token for it.
// Emails are compared exactly; an existing email is rejected.
func (s *AuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		utils.LogAuth(constants.LogEventRegister, 0, reg.Email, false, "email already registered")
		return nil, utils.NewDuplicateBadRequestError(constants.MsgUserExists)
	}

	passwordHash, err := s.hasher.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Name, reg.Email)
	user.PasswordHash = passwordHash

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can pass the existence check.
		if utils.IsDuplicateError(err) {
			return nil, utils.NewDuplicateBadRequestError(constants.MsgUserExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.LogAuth(constants.LogEventRegister, user.ID, user.Email, true, "")

	return s.issue(user)
}

// Login verifies the email and password pair. An unknown email and a wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			// Result ignored; only the cost of a verification matters here.
			_, _ = s.hasher.VerifyPassword(creds.Password, s.dummyHash)
			utils.LogAuth(constants.LogEventLogin, 0, creds.Email, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := s.hasher.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, false, err.Error())
		return nil, utils.NewInvalidCredentialsError()
	}
	if !match {
		utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, true, "")

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, _, err := s.tokens.GenerateToken(user.ID, user.Role, user.CredentialsVersion, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
