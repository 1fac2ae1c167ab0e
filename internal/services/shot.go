package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type ShotService struct {
	db *gorm.DB
}

func NewShotService(db *gorm.DB) *ShotService {
	return &ShotService{db: db}
}

type CreateShotRequest struct {
	SequenceID  uint   `json:"sequence_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	FrameIn     *int   `json:"frame_in"`
	FrameOut    *int   `json:"frame_out"`
	StatusID    *uint  `json:"status_id"`
}

type UpdateShotRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	FrameIn     *int   `json:"frame_in"`
	FrameOut    *int   `json:"frame_out"`
	StatusID    *uint  `json:"status_id"`
}

func (s *ShotService) List(projectID uint, sequenceID *uint) ([]models.Shot, error) {
	query := s.db.Where("project_id = ?", projectID)
	if sequenceID != nil {
		query = query.Where("sequence_id = ?", *sequenceID)
	}

	var shots []models.Shot
	if err := query.Preload("Status").Order("id ASC").Find(&shots).Error; err != nil {
		return nil, err
	}
	return shots, nil
}

func (s *ShotService) GetByID(id uint) (*models.Shot, error) {
	var shot models.Shot
	if err := s.db.Preload("Status").Preload("Sequence").First(&shot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("shot not found")
		}
		return nil, err
	}
	return &shot, nil
}

func (s *ShotService) Create(projectID uint, req *CreateShotRequest) (*models.Shot, error) {
	var sequence models.Sequence
	if err := s.db.First(&sequence, req.SequenceID).Error; err != nil {
		return nil, response.NewNotFound("sequence not found")
	}
	if sequence.ProjectID != projectID {
		return nil, response.NewBadRequest("sequence belongs to a different project")
	}

	statusID := req.StatusID
	if statusID == nil {
		if def := defaultStatusID(s.db); def != 0 {
			statusID = &def
		}
	}

	shot := models.Shot{
		ProjectID:   projectID,
		SequenceID:  req.SequenceID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		FrameIn:     req.FrameIn,
		FrameOut:    req.FrameOut,
		StatusID:    statusID,
	}
	shot.NbFrames = frameCount(req.FrameIn, req.FrameOut)

	if err := s.db.Create(&shot).Error; err != nil {
		return nil, err
	}
	return &shot, nil
}

func (s *ShotService) Update(id uint, req *UpdateShotRequest) (*models.Shot, error) {
	var shot models.Shot
	if err := s.db.First(&shot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("shot not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Code != "" {
		updates["code"] = req.Code
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StatusID != nil {
		updates["status_id"] = *req.StatusID
	}

	frameIn := shot.FrameIn
	frameOut := shot.FrameOut
	if req.FrameIn != nil {
		updates["frame_in"] = *req.FrameIn
		frameIn = req.FrameIn
	}
	if req.FrameOut != nil {
		updates["frame_out"] = *req.FrameOut
		frameOut = req.FrameOut
	}
	if req.FrameIn != nil || req.FrameOut != nil {
		updates["nb_frames"] = frameCount(frameIn, frameOut)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&shot).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &shot, nil
}

func (s *ShotService) Delete(id uint) error {
	result := s.db.Delete(&models.Shot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("shot not found")
	}
	return nil
}

// frameCount derives nb_frames from an inclusive frame range.
func frameCount(frameIn, frameOut *int) *int {
	if frameIn == nil || frameOut == nil || *frameOut < *frameIn {
		return nil
	}
	n := *frameOut - *frameIn + 1
	return &n
}

// defaultStatusID returns the id of the default workflow status, or 0
// when none is configured.
func defaultStatusID(db *gorm.DB) uint {
	var status models.Status
	if err := db.Where("is_default = ?", true).First(&status).Error; err != nil {
		return 0
	}
	return status.ID
}
