// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table and column names and connection
// parameters shared by the repositories, migrations and seeder.
package constants

// Table Names
const (
	TableUsers       = "users"
	TablePosts       = "posts"
	TableComments    = "comments"
	TableSubscribers = "subscribers"
	TableMigrations  = "schema_migrations"
)

// Common Column Names
const (
	ColumnRole         = "role"
	ColumnPasswordHash = "password_hash"
	ColumnResetCode    = "reset_code"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// PostgreSQL connection string parameters
const (
	PostgresSSLRequire = "sslmode=require connect_timeout=15"
	PostgresSSLDisable = "sslmode=disable connect_timeout=15"
)
