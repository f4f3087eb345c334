// Package model provides domain models and DTOs for the user module.
package model

import (
	"strings"
	"time"
)

// Role is the single authority held by a user.
type Role string

// Roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts s (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents a registered account. Matches the users table schema.
type User struct {
	ID           int64     `gorm:"primaryKey;column:id"                                           json:"id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex:idx_users_username" json:"username"`
	Name         string    `gorm:"column:name;size:100;not null"                                  json:"name"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"                         json:"-"`
	Role         Role      `gorm:"column:role;size:10;not null"                                   json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"                                     json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"                                     json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
