// Package migrations provides a framework for database schema management.
//
// Executed migrations are tracked in the schema_migrations table. Running the
// migrator is idempotent: a migration whose table already exists is recorded
// without running its SQL, and a recorded migration whose table has gone
// missing is run again.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
)

// Migration represents a database migration.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table created by this migration, used for existence checks
	TableName string
	// RunSQL executes the migration SQL within a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations runs all pending database migrations.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun := 0
	migrationsRecorded := 0

	for _, migration := range migrations {
		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		switch {
		case exists && executed[migration.Name]:
			continue

		case exists:
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, m.db, migration); err != nil {
				return err
			}
			migrationsRecorded++

		default:
			if executed[migration.Name] {
				log.Warn().
					Str("migration", migration.Name).
					Str("table", migration.TableName).
					Msg("Table doesn't exist but should. Running migration to create it.")
			} else {
				log.Info().
					Str("migration", migration.Name).
					Str("table", migration.TableName).
					Msg("Running migration")
			}

			if err := m.runMigration(ctx, migration); err != nil {
				return err
			}
			migrationsRun++
		}
	}

	if err := m.ensureUserColumns(ctx); err != nil {
		return fmt.Errorf("failed to ensure users columns: %w", err)
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the tracking table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ` + constants.TableMigrations + ` (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of recorded migrations.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM ` + constants.TableMigrations
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrations[name] = true
	}

	return migrations, rows.Err()
}

// runMigration runs a migration and records it within one transaction.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		return m.recordMigration(ctx, tx, migration)
	})
}

// recordMigration marks a migration as completed. Recording twice is a no-op.
func (m *Migrator) recordMigration(ctx context.Context, q database.Querier, migration Migration) error {
	query := `INSERT INTO ` + constants.TableMigrations + ` (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}
	return nil
}

// tableExists checks if a table exists in the current database schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1
        FROM information_schema.tables
        WHERE table_schema = current_schema()
        AND table_name = $1)
    `
	var exists bool
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	return exists, err
}

// ensureUserColumns adds the credential columns to users tables created
// before reset codes and credential versions existed.
func (m *Migrator) ensureUserColumns(ctx context.Context) error {
	statements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_code VARCHAR(6)`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_code_expiry TIMESTAMPTZ`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS credentials_version INTEGER NOT NULL DEFAULT 1`,
	}

	for _, stmt := range statements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// GetMigrations returns all migrations in dependency order.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createPostsTable(),
		createCommentsTable(),
		createLikesTable(),
		createSubscribersTable(),
	}
}
