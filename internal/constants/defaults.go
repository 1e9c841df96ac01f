// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits. These are the
// fallbacks applied by config.setDefaults when a setting is absent.
package constants

// Default Configuration Values
const (
	DefaultServerPort       = 8080
	DefaultDBMaxConnections = 20
	DefaultDBMinConnections = 5
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultAppName          = "blogspace-api"
	DefaultFrontendURL      = "http://localhost:5173"
	DefaultEmailFromName    = "BlogSpace"
	DefaultImageBucket      = "blog-images"
	DefaultImagePrefix      = "posts"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// Size limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	MaxRequestBodySize = 1048576 // 1MB

	// MaxImageUploadSize caps multipart image uploads.
	MaxImageUploadSize = 5 * 1024 * 1024 // 5MB

	// MaxLoggedQueryLength caps the SQL text written to query logs.
	MaxLoggedQueryLength = 512
)

// Default Password Hash Settings
const (
	// DefaultPasswordHashAlgorithm selects argon2id for new hashes.
	DefaultPasswordHashAlgorithm = "argon2id"

	DefaultPasswordHashMemory      = 64 * 1024
	DefaultPasswordHashIterations  = 3
	DefaultPasswordHashParallelism = 2
	DefaultPasswordHashSaltLength  = 16
	DefaultPasswordHashKeyLength   = 32

	// DefaultBcryptCost matches the cost used by accounts imported from the previous platform.
	DefaultBcryptCost = 10

	// Development environments trade hash strength for faster test cycles.
	DevPasswordHashMemory     = 16 * 1024
	DevPasswordHashIterations = 1
)

// Auth Constants
const (
	DefaultJWTIssuer  = "blogspace-api"
	BearerTokenPrefix = "Bearer "

	// SubscriberTokenBytes is the number of random bytes in a newsletter verification token.
	SubscriberTokenBytes = 32
)
