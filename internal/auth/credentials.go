package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// CredentialsSource loads the stored role and credentials version of a user.
// It returns a not-found error when the account no longer exists.
type CredentialsSource interface {
	GetCredentialsState(ctx context.Context, userID int64) (models.CredentialsState, error)
}

// VersionCache caches credentials state between requests.
type VersionCache interface {
	Get(ctx context.Context, userID int64) (models.CredentialsState, bool, error)
	Set(ctx context.Context, userID int64, state models.CredentialsState) error
	Invalidate(ctx context.Context, userID int64) error
}

// CredentialsVersionChecker rejects tokens whose role or credentials version
// no longer matches the stored account. A password reset, a role change or
// an admin password change bumps the version, so older tokens stop working.
type CredentialsVersionChecker struct {
	source CredentialsSource
	cache  VersionCache
}

// NewCredentialsVersionChecker creates a checker. cache may be nil.
func NewCredentialsVersionChecker(source CredentialsSource, cache VersionCache) *CredentialsVersionChecker {
	return &CredentialsVersionChecker{
		source: source,
		cache:  cache,
	}
}

// Check compares the token snapshot with the stored account.
func (c *CredentialsVersionChecker) Check(ctx context.Context, claims *CustomClaims) error {
	state, err := c.load(ctx, claims.UserID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return revokedTokenError()
		}
		return utils.NewInternalServerError(fmt.Errorf("failed to load credentials state: %w", err))
	}

	if state.Version != claims.Version || state.Role != claims.Role {
		log.Info().
			Int64("user_id", claims.UserID).
			Int("token_version", claims.Version).
			Int("stored_version", state.Version).
			Msg("Rejected stale token")
		return revokedTokenError()
	}

	return nil
}

// Invalidate drops the cached state for userID. Services call it after
// bumping a credentials version.
func (c *CredentialsVersionChecker) Invalidate(ctx context.Context, userID int64) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to invalidate credentials cache")
	}
}

func (c *CredentialsVersionChecker) load(ctx context.Context, userID int64) (models.CredentialsState, error) {
	if c.cache != nil {
		state, ok, err := c.cache.Get(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("Credentials cache read failed, using database")
		} else if ok {
			return state, nil
		}
	}

	state, err := c.source.GetCredentialsState(ctx, userID)
	if err != nil {
		return models.CredentialsState{}, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, userID, state); err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("Credentials cache write failed")
		}
	}

	return state, nil
}

func revokedTokenError() *utils.AppError {
	return utils.New(utils.ErrInvalidToken, constants.StatusUnauthorized, constants.MsgTokenRevoked)
}
