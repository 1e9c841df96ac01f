// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines error categories and the user-facing messages
// returned by the API. The auth messages are part of the HTTP contract: clients
// and tests compare them verbatim, so they must not be reworded casually.
package constants

// Error Types define the categories used by the sentinel errors in utils.
const (
	ErrorNotFound           = "resource not found"
	ErrorUnauthorized       = "unauthorized access"
	ErrorForbidden          = "forbidden access"
	ErrorBadRequest         = "invalid request"
	ErrorInternalServer     = "internal server error"
	ErrorValidation         = "validation error"
	ErrorDuplicate          = "duplicate resource"
	ErrorInvalidCredentials = "invalid credentials"
	ErrorExpiredToken       = "expired token"
	ErrorInvalidToken       = "invalid token"
)

// Authentication and authorization messages.
const (
	// MsgAuthRequired is returned when no bearer token accompanies a protected request.
	MsgAuthRequired = "Authentication required"

	// MsgInvalidCredentials is shared by the unknown-email and wrong-password login paths.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgUserExists is returned by registration when the email is already stored.
	MsgUserExists = "User already exists"

	// MsgAccessDenied is returned by RequireRole.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgTokenExpired indicates that the bearer token has expired.
	MsgTokenExpired = "Authentication token has expired"

	// MsgInvalidToken indicates that the bearer token is invalid.
	MsgInvalidToken = "Invalid token"

	// MsgTokenRevoked is returned when a token no longer matches the stored credentials.
	MsgTokenRevoked = "Token is no longer valid, please login again"
)

// Password reset messages.
const (
	MsgResetRequested     = "If an account exists with this email, you will receive a verification code."
	MsgResetFieldsMissing = "Email, code, and new password are required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgInvalidResetCode   = "Invalid verification code"
	MsgExpiredResetCode   = "Verification code has expired. Please request a new one."
	MsgPasswordReset      = "Password has been reset successfully. You can now login with your new password."
	MsgGenericFailure     = "An error occurred. Please try again later."
)

// User management messages.
const (
	MsgUserNotFound      = "User not found"
	MsgEmailExists       = "Email already exists"
	MsgCannotDemoteSelf  = "You cannot change your own admin role"
	MsgCannotDeleteSelf  = "You cannot delete your own account"
	MsgUserDeleted       = "User deleted successfully"
	MsgInvalidIdentifier = "Invalid identifier"
)

// Content messages.
const (
	MsgPostNotFound        = "Post not found"
	MsgPostForbidden       = "You do not have permission to modify this post"
	MsgPostEditForbidden   = "You do not have permission to edit this post"
	MsgPostDeleted         = "Post deleted successfully"
	MsgCommentNotFound     = "Comment not found"
	MsgCommentForbidden    = "Not authorized to delete this comment"
	MsgCommentEmpty        = "Comment cannot be empty"
	MsgCommentDeleted      = "Comment deleted successfully"
	MsgPostAlreadyLiked    = "Post already liked"
	MsgPostLiked           = "Post liked successfully"
	MsgPostUnliked         = "Post unliked successfully"
	MsgNoFileUploaded      = "No file uploaded"
	MsgInvalidImageType    = "Only image files are allowed!"
	MsgImageUploadFailed   = "Failed to upload image"
	MsgImageTooLarge       = "Image must be 5MB or smaller"
	MsgStorageDisabled     = "Image uploads are not configured"
	MsgDefaultAuthorName   = "Anonymous"
	MsgInternalServerError = "An internal server error occurred"
	MsgRequestBodyTooLarge = "Request body too large"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"
	MsgResourceNotFound    = "The requested resource could not be found"
	MsgMethodNotAllowed    = "This method is not allowed for this resource"
	MsgServiceUnhealthy    = "Service is not healthy"
)

// Newsletter messages.
const (
	MsgInvalidSubscriberEmail = "Please provide a valid email address"
	MsgAlreadySubscribed      = "You are already subscribed to our newsletter!"
	MsgResubscribed           = "Welcome back! You have been resubscribed to our newsletter."
	MsgSubscribed             = "Thank you for subscribing! Check your email to confirm your subscription."
	MsgSubscribeFailed        = "Failed to subscribe. Please try again later."
	MsgUnsubscribed           = "You have been unsubscribed from our newsletter."
	MsgUnsubscribeFailed      = "Failed to unsubscribe. Please try again later."
	MsgInvalidVerifyLink      = "Invalid or expired verification link"
	MsgSubscriptionVerified   = "Email verified! You are now subscribed to our newsletter."
)

// Database Error Types
const (
	// PGErrorDuplicateConstraint is the PostgreSQL error code for unique constraint violations.
	PGErrorDuplicateConstraint = "23505"

	// PGErrorForeignKeyConstraint is the PostgreSQL error code for foreign key violations.
	PGErrorForeignKeyConstraint = "23503"

	// PGErrorNotNullConstraint is the PostgreSQL error code for not-null constraint violations.
	PGErrorNotNullConstraint = "23502"

	// PGErrorCheckConstraint is the PostgreSQL error code for check constraint violations.
	PGErrorCheckConstraint = "23514"
)

// Logger Constants
const (
	LogCategoryAuth       = "auth"
	LogEventLogin         = "login"
	LogEventRegister      = "register"
	LogEventResetRequest  = "reset_request"
	LogEventResetConsume  = "reset_consume"
	LogEventUserUpdate    = "user_update"
	LogEventUserDelete    = "user_delete"
	LogEventTokenRejected = "token_rejected"
	LogRedactedValue      = "[REDACTED]"
)
