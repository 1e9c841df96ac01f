package models

// Principal is the identity resolved from a verified bearer token.
type Principal struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

// Owns reports whether the principal is the owner identified by ownerID.
func (p Principal) Owns(ownerID int64) bool {
	return p.ID == ownerID
}

// CredentialsState is the stored role and credentials version of an account,
// compared against the snapshot carried by a session token.
type CredentialsState struct {
	Role    Role `json:"role"`
	Version int  `json:"ver"`
}
