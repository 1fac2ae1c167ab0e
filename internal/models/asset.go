package models

import (
	"time"

	"gorm.io/gorm"
)

// Asset is a reusable production element (character, prop, set, ...).
type Asset struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Type        string         `gorm:"size:50;not null" json:"type"` // character, prop, environment, fx
	Description string         `gorm:"type:text" json:"description"`
	StatusID    *uint          `gorm:"index" json:"status_id"`
	Status      *Status        `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string { return "assets" }
