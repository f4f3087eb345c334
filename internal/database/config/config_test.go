package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"DB_DRIVER", "DB_HOST", "DB_NAME", "DB_SQLITE_PATH", "DB_MAX_OPEN_CONNS"} {
			t.Setenv(key, "")
		}

		cfg := LoadConfigFromEnv()
		assert.Equal(t, DriverPostgres, cfg.Driver)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "teamwork", cfg.DBName)
		assert.Equal(t, "teamwork.db", cfg.SQLitePath)
		assert.Equal(t, 25, cfg.Pool.MaxOpenConns)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "SQLite")
		t.Setenv("DB_SQLITE_PATH", "/tmp/tw.db")
		t.Setenv("DB_MAX_OPEN_CONNS", "3")
		t.Setenv("DB_MAX_IDLE_CONNS", "1")
		t.Setenv("DB_CONN_MAX_LIFETIME", "1m")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, DriverSQLite, cfg.Driver)
		assert.Equal(t, "/tmp/tw.db", cfg.SQLitePath)
		assert.Equal(t, 3, cfg.Pool.MaxOpenConns)
		assert.Equal(t, 1, cfg.Pool.MaxIdleConns)
		assert.Equal(t, time.Minute, cfg.Pool.ConnMaxLifetime)
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Driver:   DriverPostgres,
		Host:     "db",
		User:     "app",
		Password: "secret",
		DBName:   "teamwork",
		Port:     "5432",
		SSLMode:  "require",
		TimeZone: "UTC",
	}
	assert.Equal(t,
		"host=db user=app password=secret dbname=teamwork port=5432 sslmode=require TimeZone=UTC",
		BuildDSN(cfg))

	assert.Equal(t, "file.db", BuildDSN(Config{Driver: DriverSQLite, SQLitePath: "file.db"}))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Driver: DriverPostgres, Host: "h", DBName: "d"}.Validate())
	assert.NoError(t, Config{Driver: DriverSQLite, SQLitePath: ":memory:"}.Validate())
	assert.Error(t, Config{Driver: DriverPostgres}.Validate())
	assert.Error(t, Config{Driver: DriverSQLite}.Validate())
	assert.ErrorContains(t, Config{Driver: "mysql"}.Validate(), "unsupported DB_DRIVER")
}

func TestSanitizeError(t *testing.T) {
	cfg := Config{Host: "localhost", User: "admin", Password: "mypass", DBName: "prod"}

	err := SanitizeError(errors.New("failed to connect to `host=localhost user=admin password=mypass dbname=prod`"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
	assert.Contains(t, err.Error(), "password=***")
	assert.NotContains(t, err.Error(), "mypass")

	assert.NoError(t, SanitizeError(nil, cfg))
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "2")
	t.Setenv("DB_RETRY_INITIAL_DELAY", "50ms")

	cfg := LoadRetryConfigFromEnv()
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.InitialDelay)
	assert.Contains(t, cfg.RetryableErrors, "connection refused")
}
