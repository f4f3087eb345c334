// Package model provides domain models and DTOs for the submission module.
package model

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Late markers prefix the stored file name of submissions made after the
// deadline. Both start with LateMarker.
const (
	LateMarker     = "LATE_"
	LateEditMarker = "LATE_EDIT_"
)

// Column limits, in characters.
const (
	MaxFileNameLength   = 300
	MaxStoredNameLength = 100
	maxExtensionLength  = 16
)

// Submission is the single upload of one user for one assignment.
type Submission struct {
	ID           int64     `gorm:"primaryKey;column:id"                                                       json:"id"`
	AssignmentID int64     `gorm:"column:assignment_id;not null;uniqueIndex:idx_submissions_assignment_user,priority:1" json:"assignment_id"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_submissions_assignment_user,priority:2;index:idx_submissions_user_id" json:"user_id"`
	FileName     string    `gorm:"column:file_name;size:300;not null"                                         json:"file_name"`
	StoredName   string    `gorm:"column:stored_name;size:100;not null;uniqueIndex:idx_submissions_stored_name" json:"stored_name"`
	FileData     []byte    `gorm:"column:file_data;not null"                                                  json:"-"`
	ContentSize  int64     `gorm:"column:content_size;not null"                                               json:"content_size"`
	IsLate       bool      `gorm:"column:is_late;not null"                                                    json:"is_late"`
	SubmittedAt  time.Time `gorm:"column:submitted_at;not null"                                               json:"submitted_at"`
}

// TableName specifies the table name for GORM.
func (Submission) TableName() string {
	return "submissions"
}

// TagFileName applies the late marker to name. Late re-submissions get the
// edit marker so the leader can tell them from late first uploads.
func TagFileName(name string, late, resubmission bool) string {
	switch {
	case !late:
		return name
	case resubmission:
		return LateEditMarker + name
	default:
		return LateMarker + name
	}
}

// NewStoredName generates a storage-unique name that keeps the extension of
// the original file. Extensions longer than 16 characters are dropped.
func NewStoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if utf8.RuneCountInString(ext) > maxExtensionLength {
		ext = ""
	}
	return uuid.NewString() + ext
}

// CleanFileName strips any client supplied directory components and shortens
// the name so it still fits the column after the longest late marker.
func CleanFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return truncateName(name, MaxFileNameLength-len(LateEditMarker))
}

// truncateName cuts name to limit characters, keeping a short extension.
func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	ext := []rune(filepath.Ext(name))
	if len(ext) == 0 || len(ext) > maxExtensionLength {
		return string(runes[:limit])
	}
	base := runes[:len(runes)-len(ext)]
	return string(base[:limit-len(ext)]) + string(ext)
}
