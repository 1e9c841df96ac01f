// Package utils provides utility functions and helpers for the application.
// This file implements the API response writers. Success bodies are the
// resource itself; error bodies always carry a human-readable "message" and a
// machine-readable "code", so clients never need to inspect status text.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageBody is the JSON shape of responses that only confirm an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends data as the response body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, data)
}

// Message sends a {"message": ...} body.
func Message(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, MessageBody{Message: message})
}

// Error sends an error response with the given status code and error information.
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	SendJSON(w, statusCode, ErrorBody{
		Message: message,
		Code:    code,
		Details: details,
	})
}

// ErrorFromAppError sends an error response based on an AppError.
// Server-side failures are logged with their developer info before the
// client sees the generic message.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := constants.CodeInternalError
	switch err.Err {
	case ErrNotFound:
		errCode = constants.CodeNotFound
	case ErrBadRequest:
		errCode = constants.CodeBadRequest
	case ErrUnauthorized:
		errCode = constants.CodeUnauthorized
	case ErrForbidden:
		errCode = constants.CodeForbidden
	case ErrValidation:
		errCode = constants.CodeValidationError
	case ErrDuplicate:
		errCode = constants.CodeDuplicateResource
	case ErrInvalidCredentials:
		errCode = constants.CodeInvalidCredentials
	case ErrExpiredToken:
		errCode = constants.CodeTokenExpired
	case ErrInvalidToken:
		errCode = constants.CodeTokenInvalid
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Int("status", err.StatusCode).
			Str("dev_info", err.DevInfo).
			Msg("Request failed")
	}

	details := err.Details
	if details == nil && err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// SendJSON is a helper function to send JSON data with proper headers.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"message":"Failed to generate response","code":"internal_error"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(constants.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, constants.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response with the given message.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	Error(w, constants.StatusForbidden, constants.CodeForbidden, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, constants.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, constants.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// InternalServerError sends a 500 response. err is logged but not exposed.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, constants.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

// ValidationError sends a 400 Bad Request response with validation error details.
func ValidationError(w http.ResponseWriter, errors map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeValidationError, "Validation failed", errors)
}
