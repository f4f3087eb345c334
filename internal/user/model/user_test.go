package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/teamwork/pkg/apperror"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "USER", want: RoleUser},
		{in: "admin", want: RoleAdmin},
		{in: " Admin ", want: RoleAdmin},
		{in: "ROLE_ADMIN", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_JSONHidesPasswordHash(t *testing.T) {
	u := User{ID: 1, Username: "alice", Name: "Alice", PasswordHash: "$2a$10$secret", Role: RoleUser}

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), `"username":"alice"`)
	assert.Contains(t, string(data), `"role":"USER"`)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.Equal(t, "users", User{}.TableName())
}

func TestErrors_Kinds(t *testing.T) {
	assert.True(t, errors.Is(ErrUserNotFound, apperror.ErrNotFound))
	assert.True(t, errors.Is(ErrUsernameTaken, apperror.ErrDuplicateUsername))
	assert.True(t, errors.Is(ErrInvalidLogin, apperror.ErrInvalidCredentials))
	assert.True(t, errors.Is(ErrAdminRequired, apperror.ErrForbidden))
	assert.Equal(t, "user not found", ErrUserNotFound.Error())
}
