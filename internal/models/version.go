package models

import (
	"time"

	"gorm.io/gorm"
)

// Version is a numbered revision of a shot or an asset. Exactly one of
// ShotID/AssetID is set; Number increments independently per entity.
type Version struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	ShotID      *uint          `gorm:"index" json:"shot_id"`
	Shot        *Shot          `gorm:"foreignKey:ShotID" json:"shot,omitempty"`
	AssetID     *uint          `gorm:"index" json:"asset_id"`
	Asset       *Asset         `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Number      int            `gorm:"not null" json:"number"`
	Comment     string         `gorm:"type:text" json:"comment"`
	PreviewPath string         `gorm:"size:500" json:"preview_path"`
	CreatedBy   uint           `json:"created_by"`
	Author      *User          `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Version) TableName() string { return "versions" }
