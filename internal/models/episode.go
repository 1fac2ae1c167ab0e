package models

import (
	"time"

	"gorm.io/gorm"
)

// Episode groups sequences within a project. Duration is derived: it is
// always recomputed as the sum of the durations of its sequences and
// must not be written directly outside the episode service.
type Episode struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Code        string         `gorm:"size:50" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	Duration    int            `gorm:"default:0" json:"duration"` // seconds, derived from sequences
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Episode) TableName() string { return "episodes" }
