package models

import "time"

const (
	NotificationKindNote    = "note"
	NotificationKindVersion = "version"
	NotificationKindDigest  = "digest"
)

// Notification is an in-app message for a user (new note, new version,
// daily digest).
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Kind      string     `gorm:"size:50;not null" json:"kind"` // note, version, digest
	Message   string     `gorm:"type:text" json:"message"`
	ProjectID *uint      `gorm:"index" json:"project_id"`
	NoteID    *uint      `json:"note_id"`
	VersionID *uint      `json:"version_id"`
	ReadAt    *time.Time `gorm:"index" json:"read_at"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
