package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

type CreateStatusRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

type UpdateStatusRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
	IsDefault *bool  `json:"is_default"`
	SortOrder *int   `json:"sort_order"`
}

func (s *StatusService) List() ([]models.Status, error) {
	var statuses []models.Status
	if err := s.db.Order("sort_order ASC, id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *StatusService) Create(req *CreateStatusRequest) (*models.Status, error) {
	var existing models.Status
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, response.NewConflict("a status with this name already exists")
	}

	status := models.Status{
		Name:      req.Name,
		ShortName: req.ShortName,
		Color:     req.Color,
		IsDefault: req.IsDefault,
		SortOrder: req.SortOrder,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if status.IsDefault {
			if err := tx.Model(&models.Status{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&status).Error
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *StatusService) Update(id uint, req *UpdateStatusRequest) (*models.Status, error) {
	var status models.Status
	if err := s.db.First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("status not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ShortName != "" {
		updates["short_name"] = req.ShortName
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := tx.Model(&models.Status{}).Where("id != ? AND is_default = ?", id, true).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			return tx.Model(&status).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Delete refuses to remove a status still referenced by shots or
// assets.
func (s *StatusService) Delete(id uint) error {
	var inUse int64
	s.db.Model(&models.Shot{}).Where("status_id = ?", id).Count(&inUse)
	if inUse == 0 {
		s.db.Model(&models.Asset{}).Where("status_id = ?", id).Count(&inUse)
	}
	if inUse > 0 {
		return response.NewConflict("status is still in use")
	}

	result := s.db.Delete(&models.Status{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("status not found")
	}
	return nil
}
