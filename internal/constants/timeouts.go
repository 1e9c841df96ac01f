package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 30 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Authentication Timeouts
const (
	DefaultJWTExpiry     = 24 * time.Hour
	DefaultResetCodeTTL  = 10 * time.Minute
	DefaultVersionTTL    = 5 * time.Minute
	CacheConnectTimeout  = 5 * time.Second
	NotificationTimeout  = 10 * time.Second
	ImageUploadTimeout   = 30 * time.Second
	ImageCacheControlAge = 3600 // in seconds
)
