package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig configures token issuance and password hashing.
type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

// LoadAuthConfigFromEnv loads authentication configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:  GetEnv("JWT_SECRET", ""),
		Issuer:     GetEnv("JWT_ISSUER", "teamwork"),
		TokenTTL:   GetEnvDuration("JWT_TTL", 24*time.Hour),
		BcryptCost: GetEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

// Validate validates authentication configuration.
func (c AuthConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be greater than 0")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// AdminConfig describes the administrator account ensured on startup.
// An empty Username disables the bootstrap.
type AdminConfig struct {
	Username string
	Password string
	Name     string
}

// LoadAdminConfigFromEnv loads the bootstrap administrator from environment variables.
func LoadAdminConfigFromEnv() AdminConfig {
	return AdminConfig{
		Username: GetEnv("ADMIN_USERNAME", ""),
		Password: GetEnv("ADMIN_PASSWORD", ""),
		Name:     GetEnv("ADMIN_NAME", "Administrator"),
	}
}

// Enabled reports whether an administrator should be bootstrapped.
func (c AdminConfig) Enabled() bool {
	return c.Username != ""
}

// Validate validates the bootstrap administrator.
func (c AdminConfig) Validate() error {
	if c.Enabled() && len(c.Password) < 8 {
		return errors.New("ADMIN_PASSWORD must be at least 8 characters")
	}
	return nil
}
