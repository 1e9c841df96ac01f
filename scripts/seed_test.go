package scripts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
)

type stubHasher struct {
	err error
}

func (h stubHasher) HashPassword(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

var adminSettings = config.AppSettings{
	AdminName:     "Site Admin",
	AdminEmail:    "admin@example.com",
	AdminPassword: "changeme",
}

// createMockDB creates a mock database for testing
func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// createMockDBAndTx creates a mock database and transaction for testing
func createMockDBAndTx(t *testing.T) (*sql.DB, *sql.Tx, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	mock.ExpectBegin()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	cleanup := func() {
		tx.Rollback()
		db.Close()
	}

	return db, tx, mock, cleanup
}

func TestNewSeeder(t *testing.T) {
	db, _, cleanup := createMockDB(t)
	defer cleanup()

	pool := database.NewPool(db)
	seeder := NewSeeder(pool, stubHasher{}, adminSettings)

	assert.NotNil(t, seeder)
	assert.Equal(t, pool, seeder.db)
	assert.Equal(t, "admin@example.com", seeder.admin.AdminEmail)
}

func TestCreateSeedsTable(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").
		WillReturnResult(sqlmock.NewResult(0, 0))

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	err := seeder.createSeedsTable(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutedSeeds(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT name FROM seeds").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("admin_user"))

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	seeds, err := seeder.getExecutedSeeds(context.Background())

	require.NoError(t, err)
	assert.True(t, seeds["admin_user"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdminUser(t *testing.T) {
	_, tx, mock, cleanup := createMockDBAndTx(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO users \\(name, email, password_hash, role\\) VALUES (.+) ON CONFLICT \\(email\\) DO NOTHING").
		WithArgs("Site Admin", "admin@example.com", "hashed:changeme", "admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	seeder := &Seeder{hasher: stubHasher{}, admin: adminSettings}

	err := seeder.seedAdminUser(context.Background(), tx)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdminUser_DefaultName(t *testing.T) {
	_, tx, mock, cleanup := createMockDBAndTx(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Administrator", "admin@example.com", "hashed:changeme", "admin").
		WillReturnResult(sqlmock.NewResult(0, 0))

	settings := adminSettings
	settings.AdminName = ""
	seeder := &Seeder{hasher: stubHasher{}, admin: settings}

	assert.NoError(t, seeder.seedAdminUser(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdminUser_HashFailure(t *testing.T) {
	_, tx, mock, cleanup := createMockDBAndTx(t)
	defer cleanup()

	seeder := &Seeder{hasher: stubHasher{err: errors.New("rng failure")}, admin: adminSettings}

	err := seeder.seedAdminUser(context.Background(), tx)

	assert.ErrorContains(t, err, "failed to hash admin password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO seeds \\(name\\) VALUES \\(\\$1\\)").
		WithArgs("admin_user").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	assert.NoError(t, seeder.SeedDatabase(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase_AlreadySeeded(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("admin_user"))

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	assert.NoError(t, seeder.SeedDatabase(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase_AdminNotConfigured(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").WillReturnRows(sqlmock.NewRows([]string{"name"}))

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, config.AppSettings{AdminEmail: "admin@example.com"})

	assert.NoError(t, seeder.SeedDatabase(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase_SeedFailureRollsBack(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT name FROM seeds").WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	err := seeder.SeedDatabase(context.Background())

	assert.ErrorContains(t, err, "seed admin_user failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDatabase_TrackingTableError(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").WillReturnError(errors.New("permission denied"))

	seeder := NewSeeder(database.NewPool(db), stubHasher{}, adminSettings)

	err := seeder.SeedDatabase(context.Background())

	assert.ErrorContains(t, err, "failed to create seeds table")
}
