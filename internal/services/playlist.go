package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistService struct {
	db *gorm.DB
}

func NewPlaylistService(db *gorm.DB) *PlaylistService {
	return &PlaylistService{db: db}
}

type CreatePlaylistRequest struct {
	Name       string `json:"name" binding:"required"`
	VersionIDs []uint `json:"version_ids"`
}

type AddPlaylistItemRequest struct {
	VersionID uint `json:"version_id" binding:"required"`
	SortOrder int  `json:"sort_order"`
}

func (s *PlaylistService) List(projectID uint) ([]models.Playlist, error) {
	var playlists []models.Playlist
	err := s.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *PlaylistService) GetByID(id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("playlist_items.sort_order ASC")
	}).Preload("Items.Version").First(&playlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("playlist not found")
		}
		return nil, err
	}
	return &playlist, nil
}

// GetByShareToken resolves a playlist from its share token. Used by
// the unauthenticated review page.
func (s *PlaylistService) GetByShareToken(token string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("playlist_items.sort_order ASC")
	}).Preload("Items.Version").Where("share_token = ?", token).First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("playlist not found")
		}
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) Create(projectID uint, req *CreatePlaylistRequest, userID uint) (*models.Playlist, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, response.NewNotFound("project not found")
	}

	playlist := models.Playlist{
		ProjectID:  projectID,
		Name:       req.Name,
		ShareToken: uuid.NewString(),
		CreatedBy:  userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&playlist).Error; err != nil {
			return err
		}
		for i, versionID := range req.VersionIDs {
			var version models.Version
			if err := tx.First(&version, versionID).Error; err != nil {
				return response.NewNotFound("version not found")
			}
			if version.ProjectID != projectID {
				return response.NewBadRequest("version belongs to a different project")
			}
			item := models.PlaylistItem{
				PlaylistID: playlist.ID,
				VersionID:  versionID,
				SortOrder:  i,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(playlist.ID)
}

func (s *PlaylistService) AddItem(playlistID uint, req *AddPlaylistItemRequest) (*models.Playlist, error) {
	playlist, err := s.GetByID(playlistID)
	if err != nil {
		return nil, err
	}

	var version models.Version
	if err := s.db.First(&version, req.VersionID).Error; err != nil {
		return nil, response.NewNotFound("version not found")
	}
	if version.ProjectID != playlist.ProjectID {
		return nil, response.NewBadRequest("version belongs to a different project")
	}

	var existing models.PlaylistItem
	if err := s.db.Where("playlist_id = ? AND version_id = ?", playlistID, req.VersionID).First(&existing).Error; err == nil {
		return nil, response.NewConflict("version already in playlist")
	}

	item := models.PlaylistItem{
		PlaylistID: playlistID,
		VersionID:  req.VersionID,
		SortOrder:  req.SortOrder,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return s.GetByID(playlistID)
}

func (s *PlaylistService) RemoveItem(playlistID, versionID uint) error {
	result := s.db.Where("playlist_id = ? AND version_id = ?", playlistID, versionID).Delete(&models.PlaylistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("playlist item not found")
	}
	return nil
}

func (s *PlaylistService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Playlist{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewNotFound("playlist not found")
		}
		return tx.Where("playlist_id = ?", id).Delete(&models.PlaylistItem{}).Error
	})
}
