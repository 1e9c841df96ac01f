// Package server provides HTTP server implementation for the BlogSpace API.
//
// Routes are grouped by resource. Public reads sit next to authenticated
// writes inside the same subrouter; mutating post and comment routes also
// pass the ownership gate, and the admin routes require the admin role.
package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/middleware"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
// - Health check and version (unprotected), plus a route listing outside
//   production
// - Authentication endpoints (register, login, password reset)
// - Admin user management
// - Posts, comments and likes
// - Newsletter subscriptions
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// CORS runs first so preflight requests never reach the other middleware
	r.Use(middleware.CORS(s.Config.CORS))

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogging())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgResourceNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	r.Get(constants.HealthPath, s.handleHealth)
	r.Get(constants.VersionPath, s.handleVersion)

	jwtAuth := middleware.JWTAuth(s.authProviders.JWTService, s.authProviders.Checker)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	postOwner := middleware.RequireOwnerOrAdmin(s.owners.Posts, constants.ParamID, middleware.OwnershipMessages{
		Forbidden: constants.MsgPostForbidden,
		NotFound:  constants.MsgPostNotFound,
	})
	commentOwner := middleware.RequireOwnerOrAdmin(s.owners.Comments, constants.ParamID, middleware.OwnershipMessages{
		Forbidden: constants.MsgCommentForbidden,
		NotFound:  constants.MsgCommentNotFound,
	})

	r.Route(constants.APIBasePath, func(r chi.Router) {
		if s.Config.App.IsDevelopment() || s.Config.App.IsTesting() {
			r.Get(constants.RoutesPath, s.GetAPIRoutes)
		}

		r.Route(constants.AuthBasePath, func(r chi.Router) {
			r.Post(constants.AuthRegisterPath, s.Handlers.AuthHandler.Register)
			r.Post(constants.AuthLoginPath, s.Handlers.AuthHandler.Login)
			r.Post(constants.AuthForgotPasswordPath, s.Handlers.AuthHandler.ForgotPassword)
			r.Post(constants.AuthResetPasswordPath, s.Handlers.AuthHandler.ResetPassword)
		})

		// Admin user management
		r.Route(constants.UsersBasePath, func(r chi.Router) {
			r.Use(jwtAuth)
			r.Use(adminOnly)
			r.Use(chimiddleware.NoCache)

			r.Get(constants.UserStatsPath, s.Handlers.UserHandler.GetStats)
			r.Get("/", s.Handlers.UserHandler.ListUsers)
			r.Get("/{id}", s.Handlers.UserHandler.GetUser)
			r.Put("/{id}", s.Handlers.UserHandler.UpdateUser)
			r.Delete("/{id}", s.Handlers.UserHandler.DeleteUser)
		})

		r.Route(constants.PostsBasePath, func(r chi.Router) {
			// Public reads
			r.Get("/", s.Handlers.PostHandler.ListPublished)
			r.Get(constants.PostCommentsPath, s.Handlers.CommentHandler.ListByPost)
			r.Get(constants.PostLikeCountPath, s.Handlers.LikeHandler.Count)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth)

				r.Get(constants.PostMyPostsPath, s.Handlers.PostHandler.ListMine)
				r.Get(constants.PostEditPath, s.Handlers.PostHandler.GetForEdit)
				r.Post("/", s.Handlers.PostHandler.Create)
				r.Post(constants.PostUploadPath, s.Handlers.PostHandler.UploadImage)

				r.With(postOwner).Put("/{id}", s.Handlers.PostHandler.Update)
				r.With(postOwner).Delete("/{id}", s.Handlers.PostHandler.Delete)

				r.Post(constants.PostCommentsPath, s.Handlers.CommentHandler.Create)

				r.Get(constants.PostLikeCheckPath, s.Handlers.LikeHandler.Check)
				r.Post(constants.PostLikesPath, s.Handlers.LikeHandler.Like)
				r.Delete(constants.PostLikesPath, s.Handlers.LikeHandler.Unlike)

				r.Group(func(r chi.Router) {
					r.Use(adminOnly)
					r.Get(constants.PostAdminAllPath, s.Handlers.PostHandler.ListAll)
					r.Get(constants.PostAdminByIDPath, s.Handlers.PostHandler.GetByID)
				})
			})

			// Registered last; static segments above take precedence
			r.Get(constants.PostBySlugPath, s.Handlers.PostHandler.GetBySlug)
		})

		r.Route(constants.CommentsBasePath, func(r chi.Router) {
			r.Use(jwtAuth)
			r.With(commentOwner).Delete("/{id}", s.Handlers.CommentHandler.Delete)
		})

		r.Route(constants.NewsletterBasePath, func(r chi.Router) {
			r.Post(constants.NewsletterSubscribePath, s.Handlers.NewsletterHandler.Subscribe)
			r.Post(constants.NewsletterUnsubscribePath, s.Handlers.NewsletterHandler.Unsubscribe)
			r.Get(constants.NewsletterVerifyPath, s.Handlers.NewsletterHandler.Verify)
		})
	})

	s.router = r
}

// GetRouter returns the configured router. Tests drive it with httptest.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// handleHealth pings every configured dependency.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.healthChecks))
	failed := make(map[string]string)

	for _, hc := range s.healthChecks {
		if err := hc.checker.HealthCheck(r.Context()); err != nil {
			log.Error().Err(err).Str("dependency", hc.name).Msg("Health check failed")
			checks[hc.name] = "unhealthy"
			failed[hc.name] = "unreachable"
			continue
		}
		checks[hc.name] = "healthy"
	}

	if len(failed) > 0 {
		utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy, failed)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": s.Build.Version,
		"checks":  checks,
	})
}

// handleVersion reports the running build.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     s.Build.Version,
		"environment": s.Config.App.Environment,
		"commit":      s.Build.Commit,
		"build_date":  s.Build.BuildDate,
	})
}

// GetAPIRoutes lists every registered route as "METHOD /path", sorted by
// path.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	var routes []string
	walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.Replace(route, "/*/", "/", -1)
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		routes = append(routes, method+" "+route)
		return nil
	}

	if err := chi.Walk(s.router, walk); err != nil {
		utils.InternalServerError(w, err)
		return
	}

	sort.Slice(routes, func(i, j int) bool {
		pi, pj := routePath(routes[i]), routePath(routes[j])
		if pi != pj {
			return pi < pj
		}
		return routes[i] < routes[j]
	})

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"routes": routes,
	})
}

func routePath(route string) string {
	if i := strings.IndexByte(route, ' '); i >= 0 {
		return route[i+1:]
	}
	return route
}
