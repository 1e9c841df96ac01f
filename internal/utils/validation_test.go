package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

type TestModel struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type roleModel struct {
	Role string `json:"role" validate:"omitempty,role"`
}

// strictLevel rejects anything but "low" or "high" while decoding.
type strictLevel string

func (s *strictLevel) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw != "low" && raw != "high" {
		return utils.NewValidationError("level", "Must be one of: low, high")
	}
	*s = strictLevel(raw)
	return nil
}

type levelModel struct {
	Level strictLevel `json:"level"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "Valid JSON",
			requestBody: `{"name":"john","email":"john@example.com","password":"secret1"}`,
		},
		{
			name:        "Invalid JSON syntax",
			requestBody: `{"name":"john","email":john@example.com","password":"secret1"}`,
			wantErr:     true,
			errContains: "malformed JSON",
		},
		{
			name:        "Empty request body",
			requestBody: "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "Unknown field",
			requestBody: `{"name":"john","email":"john@example.com","password":"secret1","role":"admin"}`,
			wantErr:     true,
			errContains: "unknown field",
		},
		{
			name:        "Wrong type",
			requestBody: `{"name":5}`,
			wantErr:     true,
			errContains: "Must be a string",
		},
		{
			name:        "Two objects",
			requestBody: `{"name":"a"}{"name":"b"}`,
			wantErr:     true,
			errContains: "single JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requestBody io.Reader = bytes.NewBufferString(tt.requestBody)

			req := httptest.NewRequest("POST", "/", requestBody)
			req.Header.Set("Content-Type", "application/json")

			var model TestModel
			err := utils.DecodeJSON(req, &model)

			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Error message does not contain %q: %v", tt.errContains, err)
			}

			if err == nil && (model.Name != "john" || model.Email != "john@example.com") {
				t.Errorf("unexpected model: %+v", model)
			}
		})
	}
}

func TestDecodeJSONLenient(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"john","email":"john@example.com","remember":true}`))

	var model TestModel
	if err := utils.DecodeJSONLenient(req, &model); err != nil {
		t.Fatalf("DecodeJSONLenient() error = %v", err)
	}
	if model.Name != "john" || model.Email != "john@example.com" {
		t.Errorf("unexpected model: %+v", model)
	}

	req = httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":`))
	if err := utils.DecodeJSONLenient(req, &model); err == nil {
		t.Error("expected an error for a truncated body")
	}
}

func TestDecodeJSONPassesThroughUnmarshalerErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"level":"extreme"}`))

	var model levelModel
	err := utils.DecodeJSON(req, &model)

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T (%v)", err, err)
	}
	if appErr.Field != "level" {
		t.Errorf("Field = %q, want level", appErr.Field)
	}
	if !errors.Is(appErr, utils.ErrValidation) {
		t.Errorf("expected validation error, got %v", appErr.Err)
	}
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	big := `{"name":"` + strings.Repeat("a", constants.MaxRequestBodySize) + `"}`
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(big))

	var model TestModel
	err := utils.DecodeJSON(req, &model)

	if err == nil || !strings.Contains(err.Error(), constants.MsgRequestBodyTooLarge) {
		t.Errorf("DecodeJSON() error = %v, want %q", err, constants.MsgRequestBodyTooLarge)
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		model       TestModel
		wantErr     bool
		errContains string
		errField    string
	}{
		{
			name:  "Valid model",
			model: TestModel{Name: "john", Email: "john@example.com", Password: "secret1"},
		},
		{
			name:        "Missing name",
			model:       TestModel{Email: "john@example.com", Password: "secret1"},
			wantErr:     true,
			errContains: "required",
			errField:    "name",
		},
		{
			name:        "Invalid email",
			model:       TestModel{Name: "john", Email: "invalid-email", Password: "secret1"},
			wantErr:     true,
			errContains: "valid email",
			errField:    "email",
		},
		{
			name:        "Password too short",
			model:       TestModel{Name: "john", Email: "john@example.com", Password: "pass"},
			wantErr:     true,
			errContains: "at least 6",
			errField:    "password",
		},
		{
			name:        "Multiple validation errors",
			model:       TestModel{Email: "invalid-email", Password: "pass"},
			wantErr:     true,
			errContains: "Multiple validation errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(tt.model)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				return
			}

			appErr, ok := err.(*utils.AppError)
			if !ok {
				t.Fatalf("Expected AppError, got %T", err)
			}
			if tt.errContains != "" && !strings.Contains(appErr.Message, tt.errContains) {
				t.Errorf("Error message does not contain %q: %v", tt.errContains, appErr.Message)
			}
			if tt.errField != "" && appErr.Field != tt.errField {
				t.Errorf("Error field: got %v want %v", appErr.Field, tt.errField)
			}
		})
	}
}

func TestRoleValidation(t *testing.T) {
	tests := []struct {
		role    string
		wantErr bool
	}{
		{constants.RoleAdmin, false},
		{constants.RoleUser, false},
		{"", false},
		{"superuser", true},
		{"Admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			err := utils.ValidateStruct(roleModel{Role: tt.role})
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct(role=%q) error = %v, wantErr %v", tt.role, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"name":"j","email":"invalid-email","password":"pass"}`))

	var model TestModel
	err := utils.DecodeAndValidate(req, &model)

	if err == nil {
		t.Errorf("DecodeAndValidate() should return error for invalid model")
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"Valid email", "john@example.com", true},
		{"No domain", "john@", false},
		{"No @", "johnexample.com", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Exactly six", "secret", false},
		{"Long", "a much longer passphrase", false},
		{"Five characters", "short", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), constants.MsgPasswordTooShort) {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}
