package services

import (
	"errors"
	"fmt"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type VersionService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewVersionService(db *gorm.DB, queue TaskQueue) *VersionService {
	return &VersionService{db: db, queue: queue}
}

type CreateVersionRequest struct {
	ShotID      *uint  `json:"shot_id"`
	AssetID     *uint  `json:"asset_id"`
	Comment     string `json:"comment"`
	PreviewPath string `json:"preview_path"`
}

func (s *VersionService) List(projectID uint, shotID, assetID *uint) ([]models.Version, error) {
	query := s.db.Where("project_id = ?", projectID)
	if shotID != nil {
		query = query.Where("shot_id = ?", *shotID)
	}
	if assetID != nil {
		query = query.Where("asset_id = ?", *assetID)
	}

	var versions []models.Version
	if err := query.Preload("Author").Order("number DESC").Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (s *VersionService) GetByID(id uint) (*models.Version, error) {
	var version models.Version
	if err := s.db.Preload("Author").Preload("Shot").Preload("Asset").First(&version, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("version not found")
		}
		return nil, err
	}
	return &version, nil
}

// Create adds a new revision for a shot or an asset. The revision
// number continues the entity's own sequence; numbering and insert run
// in one transaction so concurrent publishes cannot share a number.
func (s *VersionService) Create(projectID uint, req *CreateVersionRequest, userID uint) (*models.Version, error) {
	if (req.ShotID == nil) == (req.AssetID == nil) {
		return nil, response.NewBadRequest("exactly one of shot_id or asset_id is required")
	}

	if req.ShotID != nil {
		var shot models.Shot
		if err := s.db.First(&shot, *req.ShotID).Error; err != nil {
			return nil, response.NewNotFound("shot not found")
		}
		if shot.ProjectID != projectID {
			return nil, response.NewBadRequest("shot belongs to a different project")
		}
	} else {
		var asset models.Asset
		if err := s.db.First(&asset, *req.AssetID).Error; err != nil {
			return nil, response.NewNotFound("asset not found")
		}
		if asset.ProjectID != projectID {
			return nil, response.NewBadRequest("asset belongs to a different project")
		}
	}

	version := models.Version{
		ProjectID:   projectID,
		ShotID:      req.ShotID,
		AssetID:     req.AssetID,
		Comment:     req.Comment,
		PreviewPath: req.PreviewPath,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var last int
		query := tx.Model(&models.Version{}).Select("COALESCE(MAX(number), 0)")
		if req.ShotID != nil {
			query = query.Where("shot_id = ?", *req.ShotID)
		} else {
			query = query.Where("asset_id = ?", *req.AssetID)
		}
		if err := query.Scan(&last).Error; err != nil {
			return err
		}

		version.Number = last + 1
		return tx.Create(&version).Error
	})
	if err != nil {
		return nil, err
	}

	if s.queue != nil {
		task := &NotificationTask{
			Kind:      models.NotificationKindVersion,
			ProjectID: projectID,
			ActorID:   userID,
			VersionID: &version.ID,
			Message:   fmt.Sprintf("New version v%d published", version.Number),
		}
		if err := s.queue.Enqueue(task); err != nil {
			logger.Warn().Err(err).Uint("version_id", version.ID).Msg("failed to enqueue version notification")
		}
	}

	return &version, nil
}

func (s *VersionService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Version{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewNotFound("version not found")
		}
		return tx.Where("version_id = ?", id).Delete(&models.PlaylistItem{}).Error
	})
}
