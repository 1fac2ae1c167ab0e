package services

import (
	"errors"
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
)

func TestStatusCreate_DefaultIsExclusive(t *testing.T) {
	db := newTestDB(t)
	statuses := NewStatusService(db)

	created, err := statuses.Create(&CreateStatusRequest{
		Name:      "Blocked",
		ShortName: "blocked",
		Color:     "#000000",
		IsDefault: true,
	})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	if !created.IsDefault {
		t.Error("new status should be the default")
	}

	var count int64
	db.Model(&models.Status{}).Where("is_default = ?", true).Count(&count)
	if count != 1 {
		t.Errorf("default statuses = %d, want exactly 1", count)
	}
}

func TestStatusDelete_RefusedWhileInUse(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	if shot.StatusID == nil {
		t.Fatal("new shot should carry the default status")
	}

	statuses := NewStatusService(db)
	err := statuses.Delete(*shot.StatusID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Fatalf("expected 409 deleting a status in use, got %v", err)
	}

	unused, _ := statuses.Create(&CreateStatusRequest{Name: "Unused", ShortName: "unused"})
	if err := statuses.Delete(unused.ID); err != nil {
		t.Fatalf("deleting an unused status should succeed: %v", err)
	}
}

func TestShotCreate_FrameCountAndDefaultStatus(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	episode, _ := NewEpisodeService(db).Create(project.ID, &CreateEpisodeRequest{Name: "E01"})
	seq, _ := NewSequenceService(db).Create(project.ID, &CreateSequenceRequest{Name: "SEQ_010", EpisodeID: &episode.ID})

	shot, err := NewShotService(db).Create(project.ID, &CreateShotRequest{
		SequenceID: seq.ID,
		Name:       "SH010",
		FrameIn:    intPtr(1001),
		FrameOut:   intPtr(1100),
	})
	if err != nil {
		t.Fatalf("create shot: %v", err)
	}

	if shot.NbFrames == nil || *shot.NbFrames != 100 {
		t.Errorf("nb_frames = %v, want 100 (inclusive range)", shot.NbFrames)
	}

	var def models.Status
	if err := db.Where("is_default = ?", true).First(&def).Error; err != nil {
		t.Fatalf("load default status: %v", err)
	}
	if shot.StatusID == nil || *shot.StatusID != def.ID {
		t.Error("shot without an explicit status should get the default")
	}
}
