// Package migrate provides database schema management.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	assignmentModel "github.com/festy23/teamwork/internal/assignment/model"
	"github.com/festy23/teamwork/internal/database/config"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	userModel "github.com/festy23/teamwork/internal/user/model"
)

// GetMigrationsPath returns the path to the SQL migrations directory.
func GetMigrationsPath() string {
	return config.GetEnv("MIGRATIONS_PATH", "migrations")
}

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userModel.User{},
		&teamModel.Team{},
		&teamModel.Membership{},
		&assignmentModel.Assignment{},
		&submissionModel.Submission{},
	}
}

// Migrate brings the schema up to date. PostgreSQL databases are migrated
// with the versioned SQL files; SQLite databases, used for local development
// and tests, are created from the gorm models.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if db.Dialector.Name() == config.DriverSQLite {
		return AutoMigrate(db)
	}
	return Up(db, GetMigrationsPath())
}

// AutoMigrate creates or updates tables from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// Up applies all pending SQL migrations from dir using golang-migrate.
func Up(db *gorm.DB, dir string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	migrationsPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	if _, statErr := os.Stat(migrationsPath); os.IsNotExist(statErr) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsPath)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
