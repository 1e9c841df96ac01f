package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// PasswordResetService issues and consumes one-time password reset codes.
//
// A user moves from no challenge to an issued challenge on RequestReset, and
// from there to consumed (ResetPassword) or expired. Requesting again
// overwrites the stored code. Responses never reveal whether an email is
// registered.
type PasswordResetService struct {
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	notifier    NotificationSender
	invalidator CredentialsInvalidator
	codeTTL     time.Duration
	logCodes    bool

	now          func() time.Time
	generateCode func() (string, error)
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	notifier NotificationSender,
	invalidator CredentialsInvalidator,
	cfg *config.ResetSettings,
) *PasswordResetService {
	ttl := cfg.CodeTTL
	if ttl <= 0 {
		ttl = constants.DefaultResetCodeTTL
	}
	return &PasswordResetService{
		userRepo:     userRepo,
		hasher:       hasher,
		notifier:     notifier,
		invalidator:  invalidator,
		codeTTL:      ttl,
		logCodes:     cfg.LogCodes,
		now:          time.Now,
		generateCode: auth.GenerateResetCode,
	}
}

// RequestReset issues a code for email when an account exists and hands it
// to the notifier. The outcome is the same for unknown emails. Only a storage
// failure is reported to the caller.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}

	code, err := s.generateCode()
	if err != nil {
		return utils.NewGenericFailureError(err)
	}
	expiresAt := s.now().Add(s.codeTTL)

	user, err := s.userRepo.SetResetChallenge(ctx, email, models.ResetChallenge{Code: code, ExpiresAt: expiresAt})
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventResetRequest, 0, email, false, "unknown email")
			return nil
		}
		return utils.NewGenericFailureError(err)
	}

	if s.logCodes {
		log.Debug().
			Str("email", email).
			Str("code", code).
			Time("expires_at", expiresAt).
			Msg("Password reset code issued")
	}

	if err := s.notifier.SendPasswordResetCode(ctx, user.Email, user.Name, code, s.codeTTL); err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to deliver password reset code")
	}

	utils.LogAuth(constants.LogEventResetRequest, user.ID, email, true, "")
	return nil
}

// ResetPassword replaces the password when email and code match an
// unexpired challenge. The challenge is cleared and every existing token for
// the account stops working. Of two concurrent calls with the same code at
// most one succeeds.
func (s *PasswordResetService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return utils.NewBadRequestError(constants.MsgResetFieldsMissing)
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	passwordHash, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return utils.NewGenericFailureError(err)
	}

	now := s.now()
	userID, err := s.userRepo.ConsumeResetChallenge(ctx, req.Email, req.Code, passwordHash, now)
	if err != nil {
		if errors.Is(err, repository.ErrResetChallengeMismatch) {
			return s.explainMismatch(ctx, req.Email, req.Code, now)
		}
		return utils.NewGenericFailureError(err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, userID)
	}
	utils.LogAuth(constants.LogEventResetConsume, userID, req.Email, true, "")

	return nil
}

// explainMismatch decides between an unknown and an expired code after the
// consuming update matched nothing. An expired code is left in place.
func (s *PasswordResetService) explainMismatch(ctx context.Context, email, code string, now time.Time) error {
	challenge, err := s.userRepo.FindResetChallenge(ctx, email, code)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventResetConsume, 0, email, false, "invalid code")
			return utils.NewBadRequestError(constants.MsgInvalidResetCode)
		}
		return utils.NewGenericFailureError(err)
	}

	if challenge.Expired(now) {
		utils.LogAuth(constants.LogEventResetConsume, 0, email, false, "expired code")
		return utils.NewBadRequestError(constants.MsgExpiredResetCode)
	}

	// The code was replaced or consumed between the two statements.
	utils.LogAuth(constants.LogEventResetConsume, 0, email, false, "code changed concurrently")
	return utils.NewBadRequestError(constants.MsgInvalidResetCode)
}
