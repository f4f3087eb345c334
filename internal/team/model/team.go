// Package model provides domain models and DTOs for the team module.
package model

import "time"

// Team is a password protected group of users. A nil LeaderID marks an
// orphaned team whose leader account was deleted.
type Team struct {
	ID             int64     `gorm:"primaryKey;column:id"                  json:"id"`
	Name           string    `gorm:"column:name;size:100;not null"         json:"name"`
	Description    string    `gorm:"column:description;size:1000;not null" json:"description"`
	PasswordHash   string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	LeaderID       *int64    `gorm:"column:leader_id;index"                json:"leader_id"`
	LeaderUsername string    `gorm:"column:leader_username;size:50"        json:"leader_username"`
	LeaderName     string    `gorm:"column:leader_name;size:100"           json:"leader_name"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"            json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"            json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// IsLedBy is the leader predicate: true only for the user recorded as leader.
func (t *Team) IsLedBy(userID int64) bool {
	return t.LeaderID != nil && userID != 0 && *t.LeaderID == userID
}

// IsOrphaned reports whether the team has no leader.
func (t *Team) IsOrphaned() bool {
	return t.LeaderID == nil
}

// Orphan clears the leader fields.
func (t *Team) Orphan() {
	t.LeaderID = nil
	t.LeaderUsername = ""
	t.LeaderName = ""
}

// Membership links a user to a team. It is the only record of membership, so
// "members of a team" and "teams of a user" always agree.
type Membership struct {
	TeamID   int64     `gorm:"primaryKey;autoIncrement:false;column:team_id"`
	UserID   int64     `gorm:"primaryKey;autoIncrement:false;column:user_id;index:idx_team_members_user_id"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"`
}

// TableName specifies the table name for GORM.
func (Membership) TableName() string {
	return "team_members"
}
