package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

var assetTypes = map[string]bool{
	"character":   true,
	"prop":        true,
	"environment": true,
	"fx":          true,
}

type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

type CreateAssetRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
	StatusID    *uint  `json:"status_id"`
}

type UpdateAssetRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	StatusID    *uint  `json:"status_id"`
}

func (s *AssetService) List(projectID uint, assetType string) ([]models.Asset, error) {
	query := s.db.Where("project_id = ?", projectID)
	if assetType != "" {
		query = query.Where("type = ?", assetType)
	}

	var assets []models.Asset
	if err := query.Preload("Status").Order("name ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *AssetService) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Preload("Status").First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("asset not found")
		}
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) Create(projectID uint, req *CreateAssetRequest) (*models.Asset, error) {
	if !assetTypes[req.Type] {
		return nil, response.NewBadRequest("invalid asset type, must be 'character', 'prop', 'environment' or 'fx'")
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, response.NewNotFound("project not found")
	}

	statusID := req.StatusID
	if statusID == nil {
		if def := defaultStatusID(s.db); def != 0 {
			statusID = &def
		}
	}

	asset := models.Asset{
		ProjectID:   projectID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		StatusID:    statusID,
	}
	if err := s.db.Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) Update(id uint, req *UpdateAssetRequest) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("asset not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Type != "" {
		if !assetTypes[req.Type] {
			return nil, response.NewBadRequest("invalid asset type, must be 'character', 'prop', 'environment' or 'fx'")
		}
		updates["type"] = req.Type
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.StatusID != nil {
		updates["status_id"] = *req.StatusID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&asset).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &asset, nil
}

func (s *AssetService) Delete(id uint) error {
	result := s.db.Delete(&models.Asset{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("asset not found")
	}
	return nil
}
