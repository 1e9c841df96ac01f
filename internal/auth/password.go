package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// Supported hash algorithms.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// ErrUnknownHashFormat is returned when a stored hash is neither an argon2id
// PHC string nor a bcrypt hash.
var ErrUnknownHashFormat = errors.New("unknown password hash format")

// PasswordConfig holds the parameters for password hashing
type PasswordConfig struct {
	Algorithm   string
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	BcryptCost  int
}

// DefaultPasswordConfig returns the default configuration for password hashing
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Algorithm:   constants.DefaultPasswordHashAlgorithm,
		Memory:      constants.DefaultPasswordHashMemory,
		Iterations:  constants.DefaultPasswordHashIterations,
		Parallelism: constants.DefaultPasswordHashParallelism,
		SaltLength:  constants.DefaultPasswordHashSaltLength,
		KeyLength:   constants.DefaultPasswordHashKeyLength,
		BcryptCost:  constants.DefaultBcryptCost,
	}
}

// ConfigFromAppConfig creates a password config from the application config
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	return &PasswordConfig{
		Algorithm:   cfg.PasswordHash.Algorithm,
		Memory:      cfg.PasswordHash.Memory,
		Iterations:  cfg.PasswordHash.Iterations,
		Parallelism: cfg.PasswordHash.Parallelism,
		SaltLength:  cfg.PasswordHash.SaltLength,
		KeyLength:   cfg.PasswordHash.KeyLength,
		BcryptCost:  cfg.PasswordHash.BcryptCost,
	}
}

// PasswordHasher turns plaintext passwords into self-describing encoded
// hashes and verifies candidates against them. New hashes use the configured
// algorithm; verification accepts both argon2id and bcrypt so accounts
// imported with bcrypt hashes can still log in.
type PasswordHasher struct {
	cfg *PasswordConfig
}

// NewPasswordHasher creates a hasher. A nil config uses the defaults.
func NewPasswordHasher(cfg *PasswordConfig) *PasswordHasher {
	if cfg == nil {
		cfg = DefaultPasswordConfig()
	}
	return &PasswordHasher{cfg: cfg}
}

// HashPassword returns the encoded hash of password.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	if h.cfg.Algorithm == AlgorithmBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cfg.BcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(hash), nil
	}

	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.cfg.Iterations,
		h.cfg.Memory,
		h.cfg.Parallelism,
		h.cfg.KeyLength,
	)

	// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.Memory,
		h.cfg.Iterations,
		h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword reports whether password matches the encoded hash. A
// mismatch is not an error; a malformed hash is.
func (h *PasswordHasher) VerifyPassword(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(password, encodedHash)

	case isBcryptHash(encodedHash):
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to verify bcrypt hash: %w", err)
		}
		return true, nil
	}

	return false, ErrUnknownHashFormat
}

func isBcryptHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

// verifyArgon2id recomputes the hash with the parameters stored in the
// encoded string, so changing the configured cost does not lock anyone out.
func verifyArgon2id(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrUnknownHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("failed to parse hash version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("incompatible argon2 version %d", version)
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	comparisonHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(hash)))

	// Use constant-time comparison to avoid timing attacks
	return subtle.ConstantTimeCompare(hash, comparisonHash) == 1, nil
}
