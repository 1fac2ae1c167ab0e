package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type SequenceService struct {
	db *gorm.DB
}

func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db}
}

type SequenceListRequest struct {
	EpisodeID *uint `form:"episode_id"`
}

type CreateSequenceRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	EpisodeID   *uint  `json:"episode_id"`
	Duration    *int   `json:"duration"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateSequenceRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	EpisodeID   *uint  `json:"episode_id"`
	Duration    *int   `json:"duration"`
	SortOrder   *int   `json:"sort_order"`
	// DetachEpisode removes the sequence from its episode. EpisodeID
	// alone cannot express "set to null" in a partial update.
	DetachEpisode bool `json:"detach_episode"`
}

// List returns the sequences of a project, optionally filtered by
// episode.
func (s *SequenceService) List(projectID uint, req *SequenceListRequest) ([]models.Sequence, error) {
	query := s.db.Where("project_id = ?", projectID)
	if req != nil && req.EpisodeID != nil {
		query = query.Where("episode_id = ?", *req.EpisodeID)
	}

	var sequences []models.Sequence
	if err := query.Order("sort_order ASC, id ASC").Find(&sequences).Error; err != nil {
		return nil, err
	}
	return sequences, nil
}

func (s *SequenceService) GetByID(id uint) (*models.Sequence, error) {
	var sequence models.Sequence
	if err := s.db.Preload("Episode").First(&sequence, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("sequence not found")
		}
		return nil, err
	}
	return &sequence, nil
}

// Create inserts a sequence and, when it lands in an episode, rolls the
// episode duration up in the same transaction.
func (s *SequenceService) Create(projectID uint, req *CreateSequenceRequest) (*models.Sequence, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, response.NewNotFound("project not found")
	}

	if req.EpisodeID != nil {
		if err := s.checkEpisode(projectID, *req.EpisodeID); err != nil {
			return nil, err
		}
	}

	sequence := models.Sequence{
		ProjectID:   projectID,
		EpisodeID:   req.EpisodeID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Duration:    req.Duration,
		SortOrder:   req.SortOrder,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sequence).Error; err != nil {
			return err
		}
		if sequence.EpisodeID != nil {
			if _, err := RecomputeDuration(tx, *sequence.EpisodeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sequence, nil
}

// Update applies a partial update. Duration changes recompute the
// current episode; moving the sequence between episodes recomputes
// both the old and the new parent, since both child sets changed.
func (s *SequenceService) Update(id uint, req *UpdateSequenceRequest) (*models.Sequence, error) {
	var sequence models.Sequence
	if err := s.db.First(&sequence, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("sequence not found")
		}
		return nil, err
	}

	oldEpisodeID := sequence.EpisodeID

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
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}

	newEpisodeID := oldEpisodeID
	if req.DetachEpisode {
		updates["episode_id"] = nil
		newEpisodeID = nil
	} else if req.EpisodeID != nil {
		if err := s.checkEpisode(sequence.ProjectID, *req.EpisodeID); err != nil {
			return nil, err
		}
		updates["episode_id"] = *req.EpisodeID
		newEpisodeID = req.EpisodeID
	}

	durationChanged := req.Duration != nil
	episodeChanged := !episodeIDEqual(oldEpisodeID, newEpisodeID)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&sequence).Updates(updates).Error; err != nil {
				return err
			}
		}

		if episodeChanged {
			if oldEpisodeID != nil {
				if _, err := RecomputeDuration(tx, *oldEpisodeID); err != nil {
					return err
				}
			}
			if newEpisodeID != nil {
				if _, err := RecomputeDuration(tx, *newEpisodeID); err != nil {
					return err
				}
			}
		} else if durationChanged && newEpisodeID != nil {
			if _, err := RecomputeDuration(tx, *newEpisodeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sequence, nil
}

// Delete removes a sequence and its shots, then rolls the episode
// duration up without it.
func (s *SequenceService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sequence models.Sequence
		if err := tx.First(&sequence, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("sequence not found")
			}
			return err
		}

		if err := tx.Where("sequence_id = ?", id).Delete(&models.Shot{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sequence).Error; err != nil {
			return err
		}

		if sequence.EpisodeID != nil {
			if _, err := RecomputeDuration(tx, *sequence.EpisodeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// checkEpisode validates that the episode exists and belongs to the
// sequence's project.
func (s *SequenceService) checkEpisode(projectID, episodeID uint) error {
	var episode models.Episode
	if err := s.db.First(&episode, episodeID).Error; err != nil {
		return response.NewNotFound("episode not found")
	}
	if episode.ProjectID != projectID {
		return response.NewBadRequest("episode belongs to a different project")
	}
	return nil
}

func episodeIDEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
