package services

import (
	"errors"
	"fmt"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type NoteService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewNoteService(db *gorm.DB, queue TaskQueue) *NoteService {
	return &NoteService{db: db, queue: queue}
}

type CreateNoteRequest struct {
	ShotID    *uint  `json:"shot_id"`
	AssetID   *uint  `json:"asset_id"`
	VersionID *uint  `json:"version_id"`
	Body      string `json:"body" binding:"required"`
	StatusID  *uint  `json:"status_id"`
}

type NoteListRequest struct {
	ShotID    *uint `form:"shot_id"`
	AssetID   *uint `form:"asset_id"`
	VersionID *uint `form:"version_id"`
}

func (s *NoteService) List(projectID uint, req *NoteListRequest) ([]models.Note, error) {
	query := s.db.Where("project_id = ?", projectID)
	if req != nil {
		if req.ShotID != nil {
			query = query.Where("shot_id = ?", *req.ShotID)
		}
		if req.AssetID != nil {
			query = query.Where("asset_id = ?", *req.AssetID)
		}
		if req.VersionID != nil {
			query = query.Where("version_id = ?", *req.VersionID)
		}
	}

	var notes []models.Note
	if err := query.Preload("Author").Preload("Status").Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Create stores a note and, when the note carries a status, moves the
// target entity to that status in the same transaction. Member
// notifications are fanned out through the task queue after commit.
func (s *NoteService) Create(projectID uint, req *CreateNoteRequest, ctx UserContext) (*models.Note, error) {
	targets := 0
	for _, set := range []bool{req.ShotID != nil, req.AssetID != nil, req.VersionID != nil} {
		if set {
			targets++
		}
	}
	if targets != 1 {
		return nil, response.NewBadRequest("exactly one of shot_id, asset_id or version_id is required")
	}

	note := models.Note{
		ProjectID: projectID,
		ShotID:    req.ShotID,
		AssetID:   req.AssetID,
		VersionID: req.VersionID,
		AuthorID:  ctx.UserID,
		Body:      req.Body,
		StatusID:  req.StatusID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.resolveTarget(tx, projectID, &note); err != nil {
			return err
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		if note.StatusID != nil {
			return s.applyStatus(tx, &note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.queue != nil {
		task := &NotificationTask{
			Kind:      models.NotificationKindNote,
			ProjectID: projectID,
			ActorID:   ctx.UserID,
			NoteID:    &note.ID,
			Message:   noteMessage(&note),
		}
		if err := s.queue.Enqueue(task); err != nil {
			logger.Warn().Err(err).Uint("note_id", note.ID).Msg("failed to enqueue note notification")
		}
	}

	s.db.Preload("Author").Preload("Status").First(&note, note.ID)
	return &note, nil
}

func (s *NoteService) Delete(id uint, ctx UserContext) error {
	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("note not found")
		}
		return err
	}

	if note.AuthorID != ctx.UserID && !ctx.IsAdmin() {
		return response.NewForbidden("only the author can delete a note")
	}

	return s.db.Delete(&note).Error
}

// resolveTarget validates the note target belongs to the project. A
// note on a version also records the version's shot or asset so status
// changes land on the right entity.
func (s *NoteService) resolveTarget(tx *gorm.DB, projectID uint, note *models.Note) error {
	switch {
	case note.ShotID != nil:
		var shot models.Shot
		if err := tx.First(&shot, *note.ShotID).Error; err != nil {
			return response.NewNotFound("shot not found")
		}
		if shot.ProjectID != projectID {
			return response.NewBadRequest("shot belongs to a different project")
		}
	case note.AssetID != nil:
		var asset models.Asset
		if err := tx.First(&asset, *note.AssetID).Error; err != nil {
			return response.NewNotFound("asset not found")
		}
		if asset.ProjectID != projectID {
			return response.NewBadRequest("asset belongs to a different project")
		}
	case note.VersionID != nil:
		var version models.Version
		if err := tx.First(&version, *note.VersionID).Error; err != nil {
			return response.NewNotFound("version not found")
		}
		if version.ProjectID != projectID {
			return response.NewBadRequest("version belongs to a different project")
		}
		note.ShotID = version.ShotID
		note.AssetID = version.AssetID
	}
	return nil
}

func (s *NoteService) applyStatus(tx *gorm.DB, note *models.Note) error {
	var status models.Status
	if err := tx.First(&status, *note.StatusID).Error; err != nil {
		return response.NewNotFound("status not found")
	}

	if note.ShotID != nil {
		return tx.Model(&models.Shot{}).Where("id = ?", *note.ShotID).Update("status_id", status.ID).Error
	}
	if note.AssetID != nil {
		return tx.Model(&models.Asset{}).Where("id = ?", *note.AssetID).Update("status_id", status.ID).Error
	}
	return nil
}

func noteMessage(note *models.Note) string {
	switch {
	case note.VersionID != nil:
		return fmt.Sprintf("new note on version #%d", *note.VersionID)
	case note.ShotID != nil:
		return fmt.Sprintf("new note on shot #%d", *note.ShotID)
	case note.AssetID != nil:
		return fmt.Sprintf("new note on asset #%d", *note.AssetID)
	}
	return "new note"
}
