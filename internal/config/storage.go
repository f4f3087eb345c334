package config

import "errors"

// DefaultUploadMaxBytes is the default submission size limit (16 MiB).
const DefaultUploadMaxBytes int64 = 16 << 20

// UploadConfig limits submission uploads.
type UploadConfig struct {
	MaxBytes int64
}

// LoadUploadConfigFromEnv loads upload configuration from environment variables.
func LoadUploadConfigFromEnv() UploadConfig {
	return UploadConfig{MaxBytes: GetEnvInt64("UPLOAD_MAX_BYTES", DefaultUploadMaxBytes)}
}

// Validate validates upload configuration.
func (c UploadConfig) Validate() error {
	if c.MaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be greater than 0")
	}
	return nil
}

// RedisConfig configures the token revocation store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadRedisConfigFromEnv loads redis configuration from environment variables.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		Addr:     GetEnv("REDIS_ADDR", ""),
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       GetEnvInt("REDIS_DB", 0),
	}
}

// Enabled reports whether a redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}
