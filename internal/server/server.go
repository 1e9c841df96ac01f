// Package server provides HTTP server implementation for the BlogSpace API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Initialization follows a fixed order: auth providers, database (with
// migrations and seeding), optional cache and image storage, repositories,
// services, handlers and finally routes. Optional dependencies are skipped
// when they are not configured.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/auth"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/cache"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/handlers"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/service"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/storage"
	"github.com/yasinhessnawi1/BlogSpace_Backend/migrations"
	"github.com/yasinhessnawi1/BlogSpace_Backend/scripts"
)

// BuildInfo describes the running binary. It is reported by GET /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages registration, login and password reset
	AuthHandler *handlers.AuthHandler

	// UserHandler manages the admin user endpoints
	UserHandler *handlers.UserHandler

	// PostHandler manages blog posts and image uploads
	PostHandler *handlers.PostHandler

	// CommentHandler manages post comments
	CommentHandler *handlers.CommentHandler

	// LikeHandler manages post likes
	LikeHandler *handlers.LikeHandler

	// NewsletterHandler manages newsletter subscriptions
	NewsletterHandler *handlers.NewsletterHandler
}

// AuthProviders contains all authentication providers for the application.
type AuthProviders struct {
	// JWTService handles JWT token generation and validation
	JWTService *auth.JWTService

	// Hasher hashes and verifies passwords
	Hasher *auth.PasswordHasher

	// Checker compares token snapshots with stored credentials. It is nil
	// when version checks are disabled.
	Checker *auth.CredentialsVersionChecker
}

// repositories holds the data access layer built by setupRepositories.
type repositories struct {
	users       repository.UserRepository
	posts       repository.PostRepository
	comments    repository.CommentRepository
	likes       repository.LikeRepository
	subscribers repository.SubscriberRepository
}

// services holds the business layer built by setupServices.
type services struct {
	auth       *service.AuthService
	reset      *service.PasswordResetService
	users      *service.UserService
	posts      *service.PostService
	comments   *service.CommentService
	likes      *service.LikeService
	newsletter *service.NewsletterService
}

// Server represents the API server. It owns every long-lived dependency and
// closes them on shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Build describes the running binary
	Build BuildInfo

	// Db provides database access
	Db *database.Pool

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// router handles HTTP routing
	router chi.Router

	authProviders *AuthProviders
	owners        OwnerLoaders
	healthChecks  []namedHealthCheck

	redisClient  *redis.Client
	versionCache *cache.VersionCache
	imageStore   *storage.ImageStore

	repos    repositories
	services services

	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
// It connects to the database, runs migrations and seeds, connects the
// optional cache and image storage, and sets up the HTTP routes.
func NewServer(ctx context.Context, cfg *config.AppConfig, build BuildInfo) (*Server, error) {
	s := &Server{
		Config: cfg,
		Build:  build,
	}

	s.setupAuthProviders()

	if err := s.setupDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupCache(ctx); err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to set up cache: %w", err)
	}

	if err := s.setupStorage(ctx); err != nil {
		s.closeResources()
		return nil, fmt.Errorf("failed to set up image storage: %w", err)
	}

	s.setupRepositories()
	s.setupServices()
	s.setupHandlers()

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupAuthProviders creates the token service and the password hasher.
func (s *Server) setupAuthProviders() {
	s.authProviders = &AuthProviders{
		JWTService: auth.NewJWTService(&s.Config.JWT),
		Hasher:     auth.NewPasswordHasher(auth.ConfigFromAppConfig(s.Config)),
	}
}

// setupDatabase connects to the database, runs migrations and seeds the
// bootstrap admin.
func (s *Server) setupDatabase(ctx context.Context) error {
	db, err := database.Connect(ctx, &s.Config.Database)
	if err != nil {
		return err
	}
	s.Db = db

	if err := migrations.NewMigrator(db).RunMigrations(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db, s.authProviders.Hasher, s.Config.App)
	if err := seeder.SeedDatabase(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to seed database: %w", err)
	}

	s.healthChecks = append(s.healthChecks, namedHealthCheck{name: "database", checker: db})
	return nil
}

// setupCache connects to Redis when it is configured.
func (s *Server) setupCache(ctx context.Context) error {
	if !s.Config.Cache.Enabled() {
		log.Info().Msg("Redis not configured, credentials state will be read from the database")
		return nil
	}

	client, err := cache.NewRedisClient(ctx, &s.Config.Cache)
	if err != nil {
		return err
	}

	s.redisClient = client
	s.versionCache = cache.NewVersionCache(client, s.Config.Cache.VersionTTL)
	s.healthChecks = append(s.healthChecks, namedHealthCheck{
		name:    "cache",
		checker: HealthCheckFunc(s.versionCache.Ping),
	})

	log.Info().Str("addr", s.Config.Cache.RedisAddr).Msg("Connected to Redis")
	return nil
}

// setupStorage connects to the object store when it is configured and makes
// sure the image bucket exists.
func (s *Server) setupStorage(ctx context.Context) error {
	if !s.Config.Storage.Enabled() {
		log.Info().Msg("Image storage not configured, uploads are disabled")
		return nil
	}

	store, err := storage.NewImageStore(&s.Config.Storage)
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}

	s.imageStore = store
	return nil
}

// setupRepositories creates a repository per table.
func (s *Server) setupRepositories() {
	s.repos = repositories{
		users:       repository.NewUserRepository(s.Db),
		posts:       repository.NewPostRepository(s.Db),
		comments:    repository.NewCommentRepository(s.Db),
		likes:       repository.NewLikeRepository(s.Db),
		subscribers: repository.NewSubscriberRepository(s.Db),
	}

	s.owners = OwnerLoaders{
		Posts:    s.repos.posts,
		Comments: s.repos.comments,
	}
}

// setupServices creates the business services. The credentials checker is
// always built so services can invalidate cached state; the authentication
// gate only consults it when version checks are enabled.
func (s *Server) setupServices() {
	var versionCache auth.VersionCache
	if s.versionCache != nil {
		versionCache = s.versionCache
	}
	checker := auth.NewCredentialsVersionChecker(s.repos.users, versionCache)
	if s.Config.JWT.ShouldVerifyVersion() {
		s.authProviders.Checker = checker
	}

	var uploader service.ImageUploader
	if s.imageStore != nil {
		uploader = s.imageStore
	}

	notifier := service.NewNotificationSender(&s.Config.Email)
	hasher := s.authProviders.Hasher

	s.services = services{
		auth:       service.NewAuthService(s.repos.users, hasher, s.authProviders.JWTService),
		reset:      service.NewPasswordResetService(s.repos.users, hasher, notifier, checker, &s.Config.Reset),
		users:      service.NewUserService(s.repos.users, hasher, checker),
		posts:      service.NewPostService(s.repos.posts, uploader),
		comments:   service.NewCommentService(s.repos.comments),
		likes:      service.NewLikeService(s.repos.likes),
		newsletter: service.NewNewsletterService(s.repos.subscribers, notifier, s.Config.App.FrontendURL),
	}
}

// setupHandlers creates the HTTP handlers.
func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		AuthHandler:       handlers.NewAuthHandler(s.services.auth, s.services.reset),
		UserHandler:       handlers.NewUserHandler(s.services.users),
		PostHandler:       handlers.NewPostHandler(s.services.posts),
		CommentHandler:    handlers.NewCommentHandler(s.services.comments),
		LikeHandler:       handlers.NewLikeHandler(s.services.likes),
		NewsletterHandler: handlers.NewNewsletterHandler(s.services.newsletter),
	}
}

// Start starts the HTTP server and blocks until it fails or a shutdown
// signal (SIGINT, SIGTERM) arrives, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Str("version", s.Build.Version).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		s.closeResources()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests, then closes the database and the
// cache connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info().Msg("Server stopped gracefully")
	}

	s.closeResources()
	return nil
}

func (s *Server) closeResources() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
		s.redisClient = nil
	}

	if s.Db != nil {
		s.Db.Close()
		s.Db = nil
		log.Info().Msg("Database connection closed")
	}
}
