// Package config loads the application configuration from a YAML file and
// environment variables. Environment variables always win over the file, and
// any value left empty after both sources is filled from internal/constants.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings      `yaml:"app"`
	Database     DatabaseSettings `yaml:"database"`
	Server       ServerSettings   `yaml:"server"`
	JWT          JWTSettings      `yaml:"jwt"`
	PasswordHash HashSettings     `yaml:"password_hash"`
	Reset        ResetSettings    `yaml:"reset"`
	Email        EmailSettings    `yaml:"email"`
	Storage      StorageSettings  `yaml:"storage"`
	Cache        CacheSettings    `yaml:"cache"`
	Logging      LoggingSettings  `yaml:"logging"`
	CORS         CORSSettings     `yaml:"cors"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment   string `yaml:"environment" env:"APP_ENV"`
	Name          string `yaml:"name" env:"APP_NAME"`
	Version       string `yaml:"version" env:"APP_VERSION"`
	FrontendURL   string `yaml:"frontend_url" env:"FRONTEND_URL"`
	AdminName     string `yaml:"admin_name" env:"ADMIN_NAME"`
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// DatabaseSettings contains database connection settings
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSL      bool   `yaml:"ssl" env:"DB_SSL"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains bearer token settings.
// VerifyCredentialsVersion makes the authentication middleware compare the
// role and credentials version stamped in each token against the stored user.
type JWTSettings struct {
	Secret                   string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry                   time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer                   string        `yaml:"issuer" env:"JWT_ISSUER"`
	VerifyCredentialsVersion *bool         `yaml:"verify_credentials_version" env:"JWT_VERIFY_VERSION"`
}

// ShouldVerifyVersion reports whether stored-credential checks are enabled. Defaults to true.
func (js *JWTSettings) ShouldVerifyVersion() bool {
	return js.VerifyCredentialsVersion == nil || *js.VerifyCredentialsVersion
}

// HashSettings contains password hashing settings
type HashSettings struct {
	Algorithm   string `yaml:"algorithm" env:"HASH_ALGORITHM"`
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
	BcryptCost  int    `yaml:"bcrypt_cost" env:"HASH_BCRYPT_COST"`
}

// ResetSettings controls the password reset challenge.
type ResetSettings struct {
	CodeTTL time.Duration `yaml:"code_ttl" env:"RESET_CODE_TTL"`
	// LogCodes writes issued codes to the debug log. Never enabled in production.
	LogCodes bool `yaml:"log_codes" env:"RESET_LOG_CODES"`
}

// EmailSettings configures outbound notifications.
// An empty SendGridAPIKey selects the log-only sender.
type EmailSettings struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromAddress    string `yaml:"from_address" env:"EMAIL_FROM"`
	FromName       string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
}

// StorageSettings configures the S3-compatible object store for post images.
// An empty Endpoint disables uploads.
type StorageSettings struct {
	Endpoint      string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
	AccessKey     string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
	Region        string `yaml:"region" env:"STORAGE_REGION"`
	UseSSL        bool   `yaml:"use_ssl" env:"STORAGE_USE_SSL"`
	Bucket        string `yaml:"bucket" env:"STORAGE_BUCKET"`
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_URL"`
}

// Enabled reports whether an object store is configured.
func (ss *StorageSettings) Enabled() bool {
	return ss.Endpoint != ""
}

// CacheSettings configures the optional Redis cache in front of credential lookups.
type CacheSettings struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
	VersionTTL    time.Duration `yaml:"version_ttl" env:"CACHE_VERSION_TTL"`
}

// Enabled reports whether a Redis address is configured.
func (cs *CacheSettings) Enabled() bool {
	return cs.RedisAddr != ""
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// ConnectionString returns the PostgreSQL keyword/value DSN. Both lib/pq and
// the pgx stdlib driver accept this format.
func (dbs *DatabaseSettings) ConnectionString() string {
	sslParams := constants.PostgresSSLDisable
	if dbs.SSL {
		sslParams = constants.PostgresSSLRequire
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s %s",
		dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, sslParams,
	)
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables.
// A missing file is not an error; the environment and defaults still apply.
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}
	if config.App.FrontendURL == "" {
		config.App.FrontendURL = constants.DefaultFrontendURL
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.Driver == "" {
		config.Database.Driver = constants.DriverPostgres
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}

	if config.PasswordHash.Algorithm == "" {
		config.PasswordHash.Algorithm = constants.DefaultPasswordHashAlgorithm
	}
	if config.PasswordHash.Memory == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
		} else {
			config.PasswordHash.Memory = constants.DevPasswordHashMemory
		}
	}
	if config.PasswordHash.Iterations == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
		} else {
			config.PasswordHash.Iterations = constants.DevPasswordHashIterations
		}
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}
	if config.PasswordHash.BcryptCost == 0 {
		config.PasswordHash.BcryptCost = constants.DefaultBcryptCost
	}

	if config.Reset.CodeTTL == 0 {
		config.Reset.CodeTTL = constants.DefaultResetCodeTTL
	}

	if config.Email.FromName == "" {
		config.Email.FromName = constants.DefaultEmailFromName
	}

	if config.Storage.Bucket == "" {
		config.Storage.Bucket = constants.DefaultImageBucket
	}

	if config.Cache.VersionTTL == 0 {
		config.Cache.VersionTTL = constants.DefaultVersionTTL
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Unknown environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if config.App.IsProduction() {
		if config.JWT.Secret == "" || config.JWT.Secret == "changeme" {
			return fmt.Errorf("JWT secret must be set in production")
		}
		if config.Reset.LogCodes {
			return fmt.Errorf("reset.log_codes must not be enabled in production")
		}
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user must be set")
	}

	switch config.Database.Driver {
	case constants.DriverPostgres, constants.DriverPgx:
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}

	switch config.PasswordHash.Algorithm {
	case "argon2id", "bcrypt":
	default:
		return fmt.Errorf("unsupported password hash algorithm: %s", config.PasswordHash.Algorithm)
	}

	if config.Reset.CodeTTL < 0 {
		return fmt.Errorf("reset code ttl must be positive")
	}

	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration without sensitive values
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("hash_algorithm", config.PasswordHash.Algorithm).
		Bool("email_enabled", config.Email.SendGridAPIKey != "").
		Bool("storage_enabled", config.Storage.Enabled()).
		Bool("cache_enabled", config.Cache.Enabled()).
		Bool("verify_token_version", config.JWT.ShouldVerifyVersion()).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
