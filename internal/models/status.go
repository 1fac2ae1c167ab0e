package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is a workflow state for shots and assets (todo, wip, ...).
type Status struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	ShortName string         `gorm:"size:20" json:"short_name"`
	Color     string         `gorm:"size:20" json:"color"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Status) TableName() string { return "statuses" }
