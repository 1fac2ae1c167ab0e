package models

import (
	"time"

	"gorm.io/gorm"
)

// Sequence is an ordered group of shots, optionally attached to an
// episode. Duration is authoritative here; episodes aggregate it.
type Sequence struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	EpisodeID   *uint          `gorm:"index" json:"episode_id"`
	Episode     *Episode       `gorm:"foreignKey:EpisodeID" json:"episode,omitempty"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Code        string         `gorm:"size:50" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	Duration    *int           `json:"duration"` // seconds, nil when not yet timed
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Sequence) TableName() string { return "sequences" }
