// Package auth provides authentication for the BlogSpace API: password
// hashing, session tokens, reset codes and the request authentication gate.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// PrincipalContextKey is the context key for storing the resolved models.Principal.
	PrincipalContextKey ContextKey = constants.PrincipalContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// AuthProvider defines methods for different authentication mechanisms.
type AuthProvider interface {
	// Authenticate checks the request and returns the verified claims.
	Authenticate(r *http.Request) (*CustomClaims, error)
}

// JWTAuthProvider implements JWT-based authentication.
// It extracts and validates JWT tokens from requests to authenticate users.
// When a checker is set, the token's role and credentials version must also
// match the stored account.
type JWTAuthProvider struct {
	jwtService JWTValidator
	checker    *CredentialsVersionChecker
}

// NewJWTAuthProvider creates a new JWTAuthProvider. checker may be nil, in
// which case a token stays valid until it expires.
func NewJWTAuthProvider(jwtService JWTValidator, checker *CredentialsVersionChecker) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
		checker:    checker,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
// It reads the token from the Authorization header, falling back to the
// auth_token cookie.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (*CustomClaims, error) {
	token, err := extractToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := p.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	if p.checker != nil {
		if err := p.checker.Check(r.Context(), claims); err != nil {
			return nil, err
		}
	}

	return claims, nil
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		cookie, err := r.Cookie(constants.AuthTokenCookie)
		if err != nil || cookie.Value == "" {
			return "", utils.ErrUnauthorized
		}
		return cookie.Value, nil
	}

	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return "", utils.ErrUnauthorized
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.BearerTokenPrefix))
	if token == "" {
		return "", utils.ErrUnauthorized
	}
	return token, nil
}

// AuthMiddleware wraps an HTTP handler with authentication.
// It tries each provider and only lets the request through if one succeeds.
// Every failure is answered with 401 except storage failures in the
// credentials check, which are 500.
func AuthMiddleware(next http.Handler, providers ...AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestIDFrom(r)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		r = r.WithContext(ctx)

		var lastErr error = utils.ErrUnauthorized
		for _, provider := range providers {
			claims, err := provider.Authenticate(r)
			if err == nil {
				principal := claims.Principal()
				ctx = WithPrincipal(ctx, principal)

				log.Debug().
					Int64("user_id", principal.ID).
					Str("role", principal.Role.String()).
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("User authenticated")

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			lastErr = err
		}

		log.Info().
			Err(lastErr).
			Str("event", constants.LogEventTokenRejected).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Authentication failed")

		var appErr *utils.AppError
		switch {
		case errors.As(lastErr, &appErr):
			utils.ErrorFromAppError(w, appErr)
		case errors.Is(lastErr, utils.ErrExpiredToken):
			utils.ErrorFromAppError(w, utils.NewExpiredTokenError())
		case errors.Is(lastErr, utils.ErrInvalidToken):
			utils.ErrorFromAppError(w, utils.NewInvalidTokenError())
		default:
			utils.Unauthorized(w, constants.MsgAuthRequired)
		}
	})
}

// RequireAuth is a middleware that requires authentication.
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return AuthMiddleware(next, providers...)
	}
}

func requestIDFrom(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	if id := r.Header.Get(constants.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, principal)
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (models.Principal, bool) {
	return PrincipalFromContext(r.Context())
}

// PrincipalFromContext extracts the authenticated principal from ctx.
func PrincipalFromContext(ctx context.Context) (models.Principal, bool) {
	principal, ok := ctx.Value(PrincipalContextKey).(models.Principal)
	return principal, ok
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	if requestID, ok := r.Context().Value(RequestIDContextKey).(string); ok {
		return requestID, true
	}
	if requestID := middleware.GetReqID(r.Context()); requestID != "" {
		return requestID, true
	}
	return "", false
}

