package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProjectStatusOpen   = "open"
	ProjectStatusClosed = "closed"
)

// Project represents a production (film, series, commercial)
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Code        string         `gorm:"uniqueIndex;size:50;not null" json:"code"` // short code, e.g. PROJ_1
	Description string         `gorm:"type:text" json:"description"`
	FPS         float64        `gorm:"default:24" json:"fps"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Status      string         `gorm:"size:20;default:open" json:"status"` // open, closed
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }
