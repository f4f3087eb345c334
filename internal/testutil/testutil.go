// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	assignmentModel "github.com/festy23/teamwork/internal/assignment/model"
	"github.com/festy23/teamwork/internal/database/migrate"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	userModel "github.com/festy23/teamwork/internal/user/model"
)

// NewSQLite opens a migrated in-memory database that lives for the duration
// of the test. The pool is limited to one connection so every query sees the
// same database; code under test must not issue non-transactional queries
// while a transaction is open.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrate.AutoMigrate(db))
	return db
}

// Logger returns a no-op logger.
func Logger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// SeedUser inserts a user with the given role. The password hash is not a
// valid bcrypt hash.
func SeedUser(t *testing.T, db *gorm.DB, username string, role userModel.Role) *userModel.User {
	t.Helper()
	now := time.Now().UTC()
	u := &userModel.User{
		Username:     username,
		Name:         username + " name",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedTeam inserts a team led by leader, who also becomes its first member.
func SeedTeam(t *testing.T, db *gorm.DB, leader *userModel.User, name string) *teamModel.Team {
	t.Helper()
	now := time.Now().UTC()
	team := &teamModel.Team{
		Name:           name,
		Description:    name + " description",
		PasswordHash:   "x",
		LeaderID:       &leader.ID,
		LeaderUsername: leader.Username,
		LeaderName:     leader.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, db.Create(team).Error)
	SeedMember(t, db, team.ID, leader.ID)
	return team
}

// SeedMember adds userID to teamID.
func SeedMember(t *testing.T, db *gorm.DB, teamID, userID int64) {
	t.Helper()
	require.NoError(t, db.Create(&teamModel.Membership{
		TeamID:   teamID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	}).Error)
}

// SeedAssignment inserts an assignment for teamID.
func SeedAssignment(t *testing.T, db *gorm.DB, teamID int64, name string, deadline time.Time) *assignmentModel.Assignment {
	t.Helper()
	now := time.Now().UTC()
	a := &assignmentModel.Assignment{
		TeamID:      teamID,
		Name:        name,
		Description: name + " description",
		Deadline:    deadline.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

// SeedSubmission inserts a submission of userID for assignmentID.
func SeedSubmission(t *testing.T, db *gorm.DB, assignmentID, userID int64, fileName string, data []byte) *submissionModel.Submission {
	t.Helper()
	s := &submissionModel.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		FileName:     fileName,
		StoredName:   submissionModel.NewStoredName(fileName),
		FileData:     data,
		ContentSize:  int64(len(data)),
		SubmittedAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Create(s).Error)
	return s
}
