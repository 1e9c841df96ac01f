package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Could not parse response body: %v", err)
	}
	return response
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       interface{}
		wantBody   map[string]interface{}
	}{
		{
			name:       "Resource body is sent as is",
			statusCode: http.StatusCreated,
			data:       map[string]interface{}{"token": "abc", "id": 1, "role": "user"},
			wantBody:   map[string]interface{}{"token": "abc", "id": float64(1), "role": "user"},
		},
		{
			name:       "Message body",
			statusCode: http.StatusOK,
			data:       utils.MessageBody{Message: "done"},
			wantBody:   map[string]interface{}{"message": "done"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			utils.JSON(rr, tt.statusCode, tt.data)

			if rr.Code != tt.statusCode {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tt.statusCode)
			}
			if ctype := rr.Header().Get("Content-Type"); ctype != "application/json" {
				t.Errorf("wrong content type: got %v want application/json", ctype)
			}
			if body := decodeBody(t, rr); !reflect.DeepEqual(body, tt.wantBody) {
				t.Errorf("unexpected body: got %v want %v", body, tt.wantBody)
			}
		})
	}
}

func TestJSONMarshalFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.JSON(rr, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("wrong status code: got %v want %v", rr.Code, http.StatusInternalServerError)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		details  map[string]string
		wantBody map[string]interface{}
	}{
		{
			name:    "Basic error",
			code:    constants.CodeBadRequest,
			message: "Invalid input",
			wantBody: map[string]interface{}{
				"code":    "bad_request",
				"message": "Invalid input",
			},
		},
		{
			name:    "Error with details",
			code:    constants.CodeValidationError,
			message: "Validation failed",
			details: map[string]string{"email": "Must be a valid email address"},
			wantBody: map[string]interface{}{
				"code":    "validation_error",
				"message": "Validation failed",
				"details": map[string]interface{}{
					"email": "Must be a valid email address",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			utils.Error(rr, http.StatusBadRequest, tt.code, tt.message, tt.details)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
			}
			if body := decodeBody(t, rr); !reflect.DeepEqual(body, tt.wantBody) {
				t.Errorf("unexpected body: got %v want %v", body, tt.wantBody)
			}
		})
	}
}

func TestErrorFromAppError(t *testing.T) {
	tests := []struct {
		name        string
		err         *utils.AppError
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"Invalid credentials", utils.NewInvalidCredentialsError(), http.StatusUnauthorized, constants.CodeInvalidCredentials, constants.MsgInvalidCredentials},
		{"Duplicate on register", utils.NewDuplicateBadRequestError(constants.MsgUserExists), http.StatusBadRequest, constants.CodeDuplicateResource, constants.MsgUserExists},
		{"Forbidden", utils.NewForbiddenError(constants.MsgPostForbidden), http.StatusForbidden, constants.CodeForbidden, constants.MsgPostForbidden},
		{"Expired token", utils.NewExpiredTokenError(), http.StatusUnauthorized, constants.CodeTokenExpired, constants.MsgTokenExpired},
		{"Generic failure hides cause", utils.NewGenericFailureError(errors.New("pq: connection refused")), http.StatusInternalServerError, constants.CodeInternalError, constants.MsgGenericFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			utils.ErrorFromAppError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tt.wantStatus)
			}

			body := decodeBody(t, rr)
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %v", body["code"], tt.wantCode)
			}
			if body["message"] != tt.wantMessage {
				t.Errorf("message = %v, want %v", body["message"], tt.wantMessage)
			}
		})
	}
}

func TestErrorFromAppErrorFieldDetails(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.ErrorFromAppError(rr, utils.NewValidationError("password", constants.MsgPasswordTooShort))

	body := decodeBody(t, rr)
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("details missing from body: %v", body)
	}
	if details["password"] != constants.MsgPasswordTooShort {
		t.Errorf("details[password] = %v", details["password"])
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"Unauthorized default", func(w http.ResponseWriter) { utils.Unauthorized(w, "") }, http.StatusUnauthorized, constants.CodeUnauthorized, constants.MsgAuthRequired},
		{"Forbidden default", func(w http.ResponseWriter) { utils.Forbidden(w, "") }, http.StatusForbidden, constants.CodeForbidden, constants.MsgAccessDenied},
		{"Not found", func(w http.ResponseWriter) { utils.NotFound(w, constants.MsgPostNotFound) }, http.StatusNotFound, constants.CodeNotFound, constants.MsgPostNotFound},
		{"Method not allowed", utils.MethodNotAllowed, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed},
		{"Internal", func(w http.ResponseWriter) { utils.InternalServerError(w, errors.New("x")) }, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			tt.write(rr)

			if rr.Code != tt.wantStatus {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tt.wantStatus)
			}
			body := decodeBody(t, rr)
			if body["code"] != tt.wantCode || body["message"] != tt.wantMsg {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.Message(rr, http.StatusOK, constants.MsgResetRequested)

	body := decodeBody(t, rr)
	if len(body) != 1 || body["message"] != constants.MsgResetRequested {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestNoContent(t *testing.T) {
	rr := httptest.NewRecorder()

	utils.NoContent(rr)

	if rr.Code != http.StatusNoContent {
		t.Errorf("wrong status code: got %v want %v", rr.Code, http.StatusNoContent)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
}
