package models_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.Role
		wantErr bool
	}{
		{"admin", models.RoleAdmin, false},
		{"user", models.RoleUser, false},
		{"", "", true},
		{"ADMIN", "", true},
		{"moderator", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := models.ParseRole(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestRole_UnmarshalJSON(t *testing.T) {
	var role models.Role
	require.NoError(t, json.Unmarshal([]byte(`"user"`), &role))
	assert.Equal(t, models.RoleUser, role)

	err := json.Unmarshal([]byte(`"root"`), &role)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "decoding errors should be validation AppErrors")
	assert.Equal(t, "role", appErr.Field)
	assert.Equal(t, 400, appErr.StatusCode)

	err = json.Unmarshal([]byte(`7`), &role)
	assert.Error(t, err)
}

func TestRole_Scan(t *testing.T) {
	var role models.Role

	require.NoError(t, role.Scan("admin"))
	assert.Equal(t, models.RoleAdmin, role)

	require.NoError(t, role.Scan([]byte("user")))
	assert.Equal(t, models.RoleUser, role)

	assert.Error(t, role.Scan("superuser"), "unknown stored roles are never trusted")
	assert.Error(t, role.Scan(42))
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, models.RoleAdmin.IsAdmin())
	assert.False(t, models.RoleUser.IsAdmin())
	assert.Equal(t, "admin", models.RoleAdmin.String())
}
