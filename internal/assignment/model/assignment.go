// Package model provides domain models and DTOs for the assignment module.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/festy23/teamwork/pkg/apperror"
)

// Assignment is a task posted to a team with a required deadline.
type Assignment struct {
	ID          int64     `gorm:"primaryKey;column:id"                                   json:"id"`
	TeamID      int64     `gorm:"column:team_id;not null;index:idx_assignments_team_deadline,priority:1" json:"team_id"`
	Name        string    `gorm:"column:name;size:200;not null"                          json:"name"`
	Description string    `gorm:"column:description;size:2000;not null"                  json:"description"`
	Deadline    time.Time `gorm:"column:deadline;not null;index:idx_assignments_team_deadline,priority:2" json:"deadline"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"                             json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"                             json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Assignment) TableName() string {
	return "assignments"
}

// IsPastDeadline reports whether now is strictly after the deadline.
func (a *Assignment) IsPastDeadline(now time.Time) bool {
	return now.After(a.Deadline)
}

// deadlineLayouts are the accepted deadline formats. The second one is what
// an HTML datetime-local input submits.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseDeadline parses s as RFC 3339 or as a zone-less local date-time
// interpreted in loc. The result is in UTC.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: deadline must look like 2006-01-02T15:04 or RFC 3339", apperror.ErrInvalidInput)
}
