package models

import (
	"time"

	"gorm.io/gorm"
)

// Shot is a single camera take within a sequence.
type Shot struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	SequenceID  uint           `gorm:"index;not null" json:"sequence_id"`
	Sequence    *Sequence      `gorm:"foreignKey:SequenceID" json:"sequence,omitempty"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Code        string         `gorm:"size:50" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	FrameIn     *int           `json:"frame_in"`
	FrameOut    *int           `json:"frame_out"`
	NbFrames    *int           `json:"nb_frames"`
	StatusID    *uint          `gorm:"index" json:"status_id"`
	Status      *Status        `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Shot) TableName() string { return "shots" }
