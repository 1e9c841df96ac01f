package constants

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	PrincipalContextKey = "principal"
	RequestIDContextKey = "request_id"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Password Validation
const (
	MinPasswordLength = 6
)

// Reset Codes
const (
	ResetCodeMin    = 100000
	ResetCodeMax    = 999999
	ResetCodeLength = 6
)

// Cookie Names
const (
	AuthTokenCookie = "auth_token"
)

// Allowed upload content types for post images.
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}
