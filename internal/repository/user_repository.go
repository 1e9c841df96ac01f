package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/database"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// UserRepository defines methods for interacting with user data.
// Emails are compared with exact equality.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Stats(ctx context.Context) (*models.UserStats, error)
	Update(ctx context.Context, id int64, update *UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	GetCredentialsState(ctx context.Context, id int64) (models.CredentialsState, error)

	SetResetChallenge(ctx context.Context, email string, challenge models.ResetChallenge) (*models.User, error)
	ConsumeResetChallenge(ctx context.Context, email, code, passwordHash string, now time.Time) (int64, error)
	FindResetChallenge(ctx context.Context, email, code string) (*models.ResetChallenge, error)
}

// UserUpdate is a partial update of a user. Nil fields are left unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *models.Role
	PasswordHash *string

	// BumpCredentialsVersion invalidates every token issued before the update.
	BumpCredentialsVersion bool
}

// IsEmpty reports whether the update changes nothing.
func (u *UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.PasswordHash == nil && !u.BumpCredentialsVersion
}

// ErrResetChallengeMismatch is returned by ConsumeResetChallenge when no
// unexpired challenge matches the email and code.
var ErrResetChallengeMismatch = errors.New("reset challenge not matched")

const userColumns = `user_id, name, email, password_hash, role, reset_code, reset_code_expiry, credentials_version, created_at, updated_at`

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ResetCode,
		&user.ResetCodeExpiry,
		&user.CredentialsVersion,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.CredentialsVersion == 0 {
		user.CredentialsVersion = 1
	}

	query := `
        INSERT INTO users (name, email, password_hash, role, credentials_version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING user_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CredentialsVersion,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Name, user.Email, user.PasswordHash, string(user.Role), user.CredentialsVersion, user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsUniqueViolation(err) {
			return utils.NewDuplicateError("User", "email", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", utils.MaskEmail(user.Email)).
		Str("role", user.Role.String()).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by exact email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// List returns all users, newest first.
func (r *PostgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	startTime := time.Now()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Stats counts users by role.
func (r *PostgresUserRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	startTime := time.Now()

	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE role = $1),
               COUNT(*) FILTER (WHERE role = $2)
        FROM users
    `

	stats := &models.UserStats{}
	err := r.db.QueryRowContext(ctx, query, constants.RoleAdmin, constants.RoleUser).
		Scan(&stats.TotalUsers, &stats.AdminUsers, &stats.RegularUsers)

	utils.LogDBQuery(query, []interface{}{constants.RoleAdmin, constants.RoleUser}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return stats, nil
}

// Update applies a partial update and returns the stored user.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, update *UserUpdate) (*models.User, error) {
	startTime := time.Now()

	setClauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	next := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		next("name", *update.Name)
	}
	if update.Email != nil {
		next("email", *update.Email)
	}
	if update.Role != nil {
		next("role", string(*update.Role))
	}
	if update.PasswordHash != nil {
		next("password_hash", *update.PasswordHash)
	}
	if update.BumpCredentialsVersion {
		setClauses = append(setClauses, "credentials_version = credentials_version + 1")
	}
	next("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		if utils.IsUniqueViolation(err) {
			email := ""
			if update.Email != nil {
				email = *update.Email
			}
			return nil, utils.NewDuplicateError("User", "email", email)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info().
		Int64("user_id", id).
		Bool("credentials_version_bumped", update.BumpCredentialsVersion).
		Msg("User updated")

	return user, nil
}

// Delete removes a user. Their posts, comments and likes cascade.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := `DELETE FROM users WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().Int64("user_id", id).Msg("User deleted")

	return nil
}

// GetCredentialsState loads the stored role and credentials version.
func (r *PostgresUserRepository) GetCredentialsState(ctx context.Context, id int64) (models.CredentialsState, error) {
	startTime := time.Now()

	query := `SELECT role, credentials_version FROM users WHERE user_id = $1`

	var state models.CredentialsState
	err := r.db.QueryRowContext(ctx, query, id).Scan(&state.Role, &state.Version)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CredentialsState{}, utils.NewNotFoundError("User", id)
		}
		return models.CredentialsState{}, fmt.Errorf("failed to get credentials state: %w", err)
	}

	return state, nil
}

// SetResetChallenge stores a reset code for the account with email,
// overwriting any earlier code. It returns the account's id and name, or a
// not-found error when no account has that email.
func (r *PostgresUserRepository) SetResetChallenge(ctx context.Context, email string, challenge models.ResetChallenge) (*models.User, error) {
	startTime := time.Now()

	query := `
        UPDATE users
        SET reset_code = $1, reset_code_expiry = $2, updated_at = $3
        WHERE email = $4
        RETURNING user_id, name, email
    `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, challenge.Code, challenge.ExpiresAt, time.Now(), email).
		Scan(&user.ID, &user.Name, &user.Email)

	utils.LogDBQuery(query, []interface{}{challenge.Code, challenge.ExpiresAt, time.Now(), email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to store reset challenge: %w", err)
	}

	return user, nil
}

// ConsumeResetChallenge replaces the password and clears the challenge in one
// statement, provided the code matches and has not expired at now. The
// credentials version is bumped so existing tokens stop working. Of several
// concurrent calls with the same code, at most one succeeds. It returns the
// user id, or ErrResetChallengeMismatch when nothing matched.
func (r *PostgresUserRepository) ConsumeResetChallenge(ctx context.Context, email, code, passwordHash string, now time.Time) (int64, error) {
	startTime := time.Now()

	query := `
        UPDATE users
        SET password_hash = $1,
            reset_code = NULL,
            reset_code_expiry = NULL,
            credentials_version = credentials_version + 1,
            updated_at = $2
        WHERE email = $3 AND reset_code = $4 AND reset_code_expiry >= $2
        RETURNING user_id
    `

	var userID int64
	err := r.db.QueryRowContext(ctx, query, passwordHash, now, email, code).Scan(&userID)

	utils.LogDBQuery(query, []interface{}{passwordHash, now, email, code}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrResetChallengeMismatch
		}
		return 0, fmt.Errorf("failed to consume reset challenge: %w", err)
	}

	return userID, nil
}

// FindResetChallenge returns the stored challenge when email and code match,
// regardless of expiry.
func (r *PostgresUserRepository) FindResetChallenge(ctx context.Context, email, code string) (*models.ResetChallenge, error) {
	startTime := time.Now()

	query := `
        SELECT reset_code, reset_code_expiry
        FROM users
        WHERE email = $1 AND reset_code = $2
    `

	challenge := &models.ResetChallenge{}
	err := r.db.QueryRowContext(ctx, query, email, code).Scan(&challenge.Code, &challenge.ExpiresAt)

	utils.LogDBQuery(query, []interface{}{email, code}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewResourceNotFoundError(constants.MsgInvalidResetCode)
		}
		return nil, fmt.Errorf("failed to find reset challenge: %w", err)
	}

	return challenge, nil
}
