package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// JWTAuth is a middleware that requires a valid JWT token.
// checker may be nil to accept any unexpired token.
func JWTAuth(jwtService auth.JWTValidator, checker *auth.CredentialsVersionChecker) func(http.Handler) http.Handler {
	provider := auth.NewJWTAuthProvider(jwtService, checker)
	return auth.RequireAuth(provider)
}

// RequireRole is a middleware that requires the authenticated user to have
// the given role. It must run after JWTAuth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.GetPrincipal(r)
			if !ok {
				utils.Unauthorized(w, constants.MsgAuthRequired)
				return
			}

			if principal.Role != role {
				log.Info().
					Int64("user_id", principal.ID).
					Str("role", principal.Role.String()).
					Str("required_role", role.String()).
					Str("path", r.URL.Path).
					Msg("Role check failed")
				utils.Forbidden(w, constants.MsgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerLoader resolves the user that owns a resource.
// It returns a not-found error when the resource does not exist.
type OwnerLoader interface {
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}

// OwnershipMessages are the error messages RequireOwnerOrAdmin answers with.
type OwnershipMessages struct {
	Forbidden string
	NotFound  string
}

// RequireOwnerOrAdmin is a middleware that lets the request through only when
// the caller owns the resource named by the URL parameter param, or is an
// admin. Admins skip the lookup. The owner is loaded on every request.
func RequireOwnerOrAdmin(loader OwnerLoader, param string, msgs OwnershipMessages) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.GetPrincipal(r)
			if !ok {
				utils.Unauthorized(w, constants.MsgAuthRequired)
				return
			}

			if principal.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			id, err := utils.ParseID(chi.URLParam(r, param))
			if err != nil {
				utils.ErrorFromAppError(w, utils.ParseError(err))
				return
			}

			ownerID, err := loader.GetOwnerID(r.Context(), id)
			if err != nil {
				if utils.IsNotFoundError(err) {
					utils.NotFound(w, msgs.NotFound)
					return
				}
				utils.ErrorFromAppError(w, utils.ParseError(err))
				return
			}

			if !principal.Owns(ownerID) {
				log.Info().
					Int64("user_id", principal.ID).
					Int64("owner_id", ownerID).
					Int64("resource_id", id).
					Str("path", r.URL.Path).
					Msg("Ownership check failed")
				utils.Forbidden(w, msgs.Forbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
