package models

import (
	"encoding/json"
	"fmt"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// Role is the authorization level of a user. Only RoleAdmin and RoleUser
// exist; any other value is rejected when decoded from JSON, read from a
// token or scanned from the database.
type Role string

const (
	RoleAdmin Role = constants.RoleAdmin
	RoleUser  Role = constants.RoleUser
)

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleUser:
		return Role(raw), nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON rejects unknown roles at the request boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return utils.NewValidationError(constants.ColumnRole, "Role must be a string")
	}

	role, err := ParseRole(raw)
	if err != nil {
		return utils.NewValidationError(constants.ColumnRole,
			fmt.Sprintf("Must be one of: %s, %s", constants.RoleAdmin, constants.RoleUser))
	}

	*r = role
	return nil
}

// Scan implements sql.Scanner so an unexpected stored role surfaces as an error.
func (r *Role) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}

	role, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
