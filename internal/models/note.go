package models

import (
	"time"

	"gorm.io/gorm"
)

// Note is review feedback attached to a shot, asset or version. A note
// may carry a status: the target entity's status is updated together
// with the note.
type Note struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	ShotID    *uint          `gorm:"index" json:"shot_id"`
	AssetID   *uint          `gorm:"index" json:"asset_id"`
	VersionID *uint          `gorm:"index" json:"version_id"`
	AuthorID  uint           `gorm:"index;not null" json:"author_id"`
	Author    *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	StatusID  *uint          `json:"status_id"`
	Status    *Status        `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Note) TableName() string { return "notes" }
