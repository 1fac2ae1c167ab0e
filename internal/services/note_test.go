package services

import (
	"context"
	"errors"
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

func setupShot(t *testing.T, db *gorm.DB, projectID uint) *models.Shot {
	t.Helper()
	episode, err := NewEpisodeService(db).Create(projectID, &CreateEpisodeRequest{Name: "E01"})
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}
	seq, err := NewSequenceService(db).Create(projectID, &CreateSequenceRequest{Name: "SEQ_010", EpisodeID: &episode.ID})
	if err != nil {
		t.Fatalf("create sequence: %v", err)
	}
	shot, err := NewShotService(db).Create(projectID, &CreateShotRequest{SequenceID: seq.ID, Name: "SH010"})
	if err != nil {
		t.Fatalf("create shot: %v", err)
	}
	return shot
}

func TestNoteCreate_ExactlyOneTarget(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	notes := NewNoteService(db, nil)

	if _, err := notes.Create(project.ID, &CreateNoteRequest{Body: "no target"}, userCtx(owner)); err == nil {
		t.Error("note without a target should be rejected")
	}

	asset, _ := NewAssetService(db).Create(project.ID, &CreateAssetRequest{Name: "Hero", Type: "character"})
	if _, err := notes.Create(project.ID, &CreateNoteRequest{
		Body:    "two targets",
		ShotID:  &shot.ID,
		AssetID: &asset.ID,
	}, userCtx(owner)); err == nil {
		t.Error("note with two targets should be rejected")
	}
}

func TestNoteCreate_OnVersionInheritsShot(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	version, err := NewVersionService(db, nil).Create(project.ID, &CreateVersionRequest{ShotID: &shot.ID}, owner.ID)
	if err != nil {
		t.Fatalf("create version: %v", err)
	}

	note, err := NewNoteService(db, nil).Create(project.ID, &CreateNoteRequest{
		Body:      "fix the lighting",
		VersionID: &version.ID,
	}, userCtx(owner))
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	if note.ShotID == nil || *note.ShotID != shot.ID {
		t.Error("note on a shot version should inherit the shot")
	}
	if note.AuthorID != owner.ID {
		t.Errorf("author = %d, want %d", note.AuthorID, owner.ID)
	}
}

func TestNoteCreate_MovesTargetStatus(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	var retake models.Status
	if err := db.Where("short_name = ?", "wip").First(&retake).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}

	if _, err := NewNoteService(db, nil).Create(project.ID, &CreateNoteRequest{
		Body:     "needs another pass",
		ShotID:   &shot.ID,
		StatusID: &retake.ID,
	}, userCtx(owner)); err != nil {
		t.Fatalf("create note: %v", err)
	}

	var reloaded models.Shot
	if err := db.First(&reloaded, shot.ID).Error; err != nil {
		t.Fatalf("reload shot: %v", err)
	}
	if reloaded.StatusID == nil || *reloaded.StatusID != retake.ID {
		t.Error("note with a status should move the shot to that status")
	}
}

func TestNoteDelete_AuthorOrAdminOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	other := createTestUser(t, db, "other", "user")
	admin := createTestUser(t, db, "admin", "admin")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	notes := NewNoteService(db, nil)

	note, err := notes.Create(project.ID, &CreateNoteRequest{Body: "mine", ShotID: &shot.ID}, userCtx(owner))
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	err = notes.Delete(note.ID, userCtx(other))
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Fatalf("expected 403 for a non-author, got %v", err)
	}

	if err := notes.Delete(note.ID, userCtx(admin)); err != nil {
		t.Fatalf("admin should be able to delete any note: %v", err)
	}
}

func TestNotificationFanOut_SkipsActor(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	viewer := createTestUser(t, db, "viewer", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)
	shot := setupShot(t, db, project.ID)

	access := NewAccessService(db)
	if _, err := access.Grant(project.ID, viewer.ID, models.RoleViewer); err != nil {
		t.Fatalf("grant: %v", err)
	}

	notes := NewNoteService(db, nil)
	note, err := notes.Create(project.ID, &CreateNoteRequest{Body: "review please", ShotID: &shot.ID}, userCtx(owner))
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	notificationService := NewNotificationService(db)
	if err := notificationService.ProcessTask(context.Background(), &NotificationTask{
		Kind:      models.NotificationKindNote,
		ProjectID: project.ID,
		ActorID:   owner.ID,
		NoteID:    &note.ID,
		Message:   "review please",
	}); err != nil {
		t.Fatalf("process task: %v", err)
	}

	// The actor is skipped; every other permission holder is notified
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", viewer.ID).Count(&count)
	if count != 1 {
		t.Errorf("viewer notifications = %d, want 1", count)
	}
	db.Model(&models.Notification{}).Where("user_id = ?", owner.ID).Count(&count)
	if count != 0 {
		t.Errorf("author notifications = %d, want 0", count)
	}
}
