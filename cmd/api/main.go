// Package main is the entry point for the BlogSpace API server. The server
// handles authentication, admin user management, posts, comments, likes and
// newsletter subscriptions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/server"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is fine; configuration may come from the
	// environment or the YAML file.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Override the configured log level")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("BlogSpace API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Until the configured logger is set up
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override version from build if available (not in dev mode)
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	if logLevel != "" {
		if err := utils.SetLogLevel(logLevel); err != nil {
			log.Warn().Err(err).Msg("Ignoring -log-level")
		}
	}

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("log_level", utils.GetLogLevel()).
		Msg("Starting BlogSpace API Server")

	utils.InitValidator()

	build := server.BuildInfo{
		Version:   cfg.App.Version,
		Commit:    commit,
		BuildDate: buildDate,
	}

	srv, err := server.NewServer(context.Background(), cfg, build)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Blocks until SIGINT or SIGTERM
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
