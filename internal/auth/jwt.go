package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidTokenClaims   = errors.New("invalid token claims")
)

// CustomClaims represents the claims in a JWT token. Role and Version are a
// snapshot of the account at issuance.
type CustomClaims struct {
	UserID  int64       `json:"user_id"`
	Role    models.Role `json:"role"`
	Version int         `json:"ver"`
	jwt.RegisteredClaims
}

// Principal returns the identity carried by the claims.
func (c *CustomClaims) Principal() models.Principal {
	return models.Principal{ID: c.UserID, Role: c.Role}
}

// JWTService provides JWT token generation and validation functionality
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
	}
}

// GetConfig returns the JWT settings, falling back to defaults when unset.
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

// GenerateToken issues a signed token for the user. A ttl of zero or less
// uses the configured expiry. It returns the token and its unique id.
func (s *JWTService) GenerateToken(userID int64, role models.Role, version int, ttl time.Duration) (string, string, error) {
	cfg := s.GetConfig()
	if ttl <= 0 {
		ttl = cfg.Expiry
	}
	if ttl <= 0 {
		ttl = constants.DefaultJWTExpiry
	}

	jwtID := uuid.New().String()

	now := time.Now()
	claims := CustomClaims{
		UserID:  userID,
		Role:    role,
		Version: version,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a JWT token and returns its claims if valid.
// Expired tokens yield an expired-token error; every other failure, including
// an unknown role, yields an invalid-token error.
func (s *JWTService) ValidateToken(tokenString string) (*CustomClaims, error) {
	cfg := s.GetConfig()

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}
