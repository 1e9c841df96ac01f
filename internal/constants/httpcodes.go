// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as status codes,
// application error codes, header names and security header values.
package constants

// HTTP Status Codes used by the handlers and middleware.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusConflict            = 409
	StatusRequestTooLarge     = 413
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

// Application error codes returned in the "code" field of error bodies.
// They let clients branch on the failure category without parsing messages.
const (
	// CodeBadRequest indicates a malformed or invalid request.
	CodeBadRequest = "bad_request"

	// CodeUnauthorized indicates missing or invalid authentication.
	CodeUnauthorized = "unauthorized"

	// CodeForbidden indicates the principal lacks the role or ownership required.
	CodeForbidden = "forbidden"

	// CodeNotFound indicates the requested resource does not exist.
	CodeNotFound = "not_found"

	// CodeMethodNotAllowed indicates the HTTP method is not allowed for the endpoint.
	CodeMethodNotAllowed = "method_not_allowed"

	// CodeConflict indicates a resource conflict, such as a duplicate entry.
	CodeConflict = "conflict"

	// CodeInternalError indicates an unexpected server error.
	CodeInternalError = "internal_error"

	// CodeValidationError indicates request validation failed.
	CodeValidationError = "validation_error"

	// CodeInvalidCredentials indicates the email/password pair was rejected.
	CodeInvalidCredentials = "invalid_credentials"

	// CodeTokenExpired indicates a bearer token has passed its expiry.
	CodeTokenExpired = "token_expired"

	// CodeTokenInvalid indicates a bearer token is malformed, tampered or stale.
	CodeTokenInvalid = "token_invalid"

	// CodeDuplicateResource indicates an attempt to create a resource that already exists.
	CodeDuplicateResource = "duplicate_resource"

	// CodeServiceUnavailable indicates a dependency of the service is down.
	CodeServiceUnavailable = "service_unavailable"
)

// HTTP Header Names
const (
	HeaderContentType           = "Content-Type"
	HeaderAuthorization         = "Authorization"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)

// Security Header Values applied by middleware.SecurityHeaders.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
)
