// Package scripts provides utility scripts for database and system management.
//
// This package implements database seeding. Seeds are tracked in a seeds table
// like migrations, so each one runs once and the process is safe to repeat on
// both new and existing databases.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// PasswordHasher hashes the bootstrap admin password.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// seed is a named seeding step. A step whose enabled func reports false is
// skipped and not recorded, so it runs on a later start once configured.
type seed struct {
	Name     string
	Enabled  func() bool
	SeedFunc func(ctx context.Context, tx *sql.Tx) error
}

// Seeder handles database seeding.
type Seeder struct {
	db     *database.Pool
	hasher PasswordHasher
	admin  config.AppSettings
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - db: A database connection pool to use for seeding
//   - hasher: Hashes the bootstrap admin password
//   - admin: Application settings carrying the bootstrap admin account
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(db *database.Pool, hasher PasswordHasher, admin config.AppSettings) *Seeder {
	return &Seeder{
		db:     db,
		hasher: hasher,
		admin:  admin,
	}
}

// SeedDatabase seeds the database with initial data.
// It creates the seeds tracking table if it doesn't exist, then runs
// all seed functions that haven't been executed yet.
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	seeds := []seed{
		{Name: "admin_user", Enabled: s.adminConfigured, SeedFunc: s.seedAdminUser},
	}

	for _, sd := range seeds {
		switch {
		case executedSeeds[sd.Name]:
			log.Debug().Str("seed", sd.Name).Msg("Seed already executed")
		case sd.Enabled != nil && !sd.Enabled():
			log.Info().Str("seed", sd.Name).Msg("Seed skipped, not configured")
		default:
			log.Info().Str("seed", sd.Name).Msg("Running seed")
			if err := s.runSeed(ctx, sd.Name, sd.SeedFunc); err != nil {
				return err
			}
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds table if it doesn't exist.
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns the names of executed seeds.
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed function within a transaction.
// If the seed operation fails, the transaction is rolled back.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - name: The name of the seed operation
//   - seedFunc: The function that performs the seeding
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}

		query := `INSERT INTO seeds (name) VALUES ($1)`
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

func (s *Seeder) adminConfigured() bool {
	return s.admin.AdminEmail != "" && s.admin.AdminPassword != ""
}

// seedAdminUser creates the bootstrap admin account. An existing account with
// the same email is left untouched.
func (s *Seeder) seedAdminUser(ctx context.Context, tx *sql.Tx) error {
	hash, err := s.hasher.HashPassword(s.admin.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := s.admin.AdminName
	if name == "" {
		name = "Administrator"
	}

	query := `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (email) DO NOTHING
    `
	result, err := tx.ExecContext(ctx, query, name, s.admin.AdminEmail, hash, constants.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info().
		Str("email", utils.MaskEmail(s.admin.AdminEmail)).
		Bool("created", inserted > 0).
		Msg("Admin user seeding completed")

	return nil
}
