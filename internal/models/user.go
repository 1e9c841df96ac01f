package models

import (
	"encoding/json"
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// User represents a registered account.
// ResetCode and ResetCodeExpiry are either both set or both nil.
type User struct {
	ID                 int64      `json:"id" db:"user_id"`
	Name               string     `json:"name" db:"name"`
	Email              string     `json:"email" db:"email"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	Role               Role       `json:"role" db:"role"`
	ResetCode          *string    `json:"-" db:"reset_code"`
	ResetCodeExpiry    *time.Time `json:"-" db:"reset_code_expiry"`
	CredentialsVersion int        `json:"-" db:"credentials_version"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User with the default role. The password hash is
// filled in by the registration flow.
func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		Name:               name,
		Email:              email,
		Role:               RoleUser,
		CredentialsVersion: 1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// Summary returns the admin-facing view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the user representation returned by the admin endpoints.
type UserSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserRegistration represents the data required for user registration.
// A role sent by the client is accepted and ignored; new accounts are always
// RoleUser.
type UserRegistration struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     json.RawMessage `json:"role,omitempty" validate:"-"`
}

// UserCredentials represents the login credentials provided by a user.
// Missing fields are not validated; they simply fail to match an account.
type UserCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserAdminUpdate is the partial update accepted by PUT /api/users/{id}.
// Empty strings and a nil role leave the stored value unchanged; a password
// shorter than the minimum length is ignored.
type UserAdminUpdate struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Role     *Role  `json:"role"`
	Password string `json:"password"`
}

// UserStats is returned by GET /api/users/stats.
type UserStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	AdminUsers   int64 `json:"adminUsers"`
	RegularUsers int64 `json:"regularUsers"`
}
