package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist is an ordered selection of versions for a review session.
// ShareToken allows read-only access without authentication.
type Playlist struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ProjectID  uint           `gorm:"index;not null" json:"project_id"`
	Name       string         `gorm:"size:200;not null" json:"name"`
	ShareToken string         `gorm:"uniqueIndex;size:64" json:"share_token"`
	CreatedBy  uint           `json:"created_by"`
	Items      []PlaylistItem `gorm:"foreignKey:PlaylistID" json:"items,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type PlaylistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"uniqueIndex:idx_playlist_version;not null" json:"playlist_id"`
	VersionID  uint      `gorm:"uniqueIndex:idx_playlist_version;not null" json:"version_id"`
	Version    *Version  `gorm:"foreignKey:VersionID" json:"version,omitempty"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Playlist) TableName() string     { return "playlists" }
func (PlaylistItem) TableName() string { return "playlist_items" }
