package auth

import (
	"time"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

// TokenIssuer creates session tokens.
type TokenIssuer interface {
	GenerateToken(userID int64, role models.Role, version int, ttl time.Duration) (string, string, error)
}

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string) (*CustomClaims, error)
}

var (
	_ TokenIssuer  = (*JWTService)(nil)
	_ JWTValidator = (*JWTService)(nil)
)
