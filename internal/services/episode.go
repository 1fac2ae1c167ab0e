package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type EpisodeService struct {
	db *gorm.DB
}

func NewEpisodeService(db *gorm.DB) *EpisodeService {
	return &EpisodeService{db: db}
}

type CreateEpisodeRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateEpisodeRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"`
}

// List returns all episodes of a project in sort order.
func (s *EpisodeService) List(projectID uint) ([]models.Episode, error) {
	var episodes []models.Episode
	err := s.db.Where("project_id = ?", projectID).
		Order("sort_order ASC, id ASC").
		Find(&episodes).Error
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

func (s *EpisodeService) GetByID(id uint) (*models.Episode, error) {
	var episode models.Episode
	if err := s.db.First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("episode not found")
		}
		return nil, err
	}
	return &episode, nil
}

func (s *EpisodeService) Create(projectID uint, req *CreateEpisodeRequest) (*models.Episode, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, response.NewNotFound("project not found")
	}

	episode := models.Episode{
		ProjectID:   projectID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.db.Create(&episode).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

func (s *EpisodeService) Update(id uint, req *UpdateEpisodeRequest) (*models.Episode, error) {
	episode, err := s.GetByID(id)
	if err != nil {
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
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(episode).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return episode, nil
}

// Delete removes an episode. Its sequences are detached, not deleted;
// their durations simply stop rolling up anywhere.
func (s *EpisodeService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var episode models.Episode
		if err := tx.First(&episode, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("episode not found")
			}
			return err
		}

		if err := tx.Model(&models.Sequence{}).
			Where("episode_id = ?", id).
			Update("episode_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&episode).Error
	})
}

// RecomputeDuration recalculates an episode's duration as the sum of
// its sequences' durations (null counts as 0) and persists it. It runs
// on the caller's transaction so the triggering sequence mutation and
// the rollup commit or roll back together.
func RecomputeDuration(tx *gorm.DB, episodeID uint) (int, error) {
	var total int
	err := tx.Model(&models.Sequence{}).
		Where("episode_id = ?", episodeID).
		Select("COALESCE(SUM(COALESCE(duration, 0)), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	err = tx.Model(&models.Episode{}).
		Where("id = ?", episodeID).
		Update("duration", total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
