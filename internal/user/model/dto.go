package model

import (
	"strings"
	"time"
)

// RegisterRequest represents the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required" validate:"notblank,max=100"`
	Username string `json:"username" binding:"required" validate:"notblank,min=3,max=50"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=72"`
}

// Normalized returns a copy with surrounding whitespace removed from the
// name and username.
func (r RegisterRequest) Normalized() RegisterRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	return r
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// AdminUpdateUserRequest represents an administrator's edit of an account.
// A blank Password keeps the current one.
type AdminUpdateUserRequest struct {
	Name     string `json:"name"     binding:"required" validate:"notblank,max=100"`
	Username string `json:"username" binding:"required" validate:"notblank,min=3,max=50"`
	Password string `json:"password"                    validate:"omitempty,min=8,max=72"`
	Role     string `json:"role"     binding:"required" validate:"required,oneof=USER ADMIN user admin"`
}

// Normalized trims the name, username and role. A whitespace-only password
// becomes empty.
func (r AdminUpdateUserRequest) Normalized() AdminUpdateUserRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.TrimSpace(r.Role)
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}
	return r
}

// UserResponse wraps a single user.
type UserResponse struct {
	User User `json:"user"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Users []User `json:"users"`
}
