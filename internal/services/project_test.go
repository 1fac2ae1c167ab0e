package services

import (
	"errors"
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
)

func TestProjectCreate_CreatorBecomesOwner(t *testing.T) {
	db := newTestDB(t)
	creator := createTestUser(t, db, "creator", "user")

	project := createTestProject(t, db, "PROJ_1", creator.ID)

	var perm models.ProjectPermission
	if err := db.Where("project_id = ? AND user_id = ?", project.ID, creator.ID).First(&perm).Error; err != nil {
		t.Fatalf("creator should have a permission row: %v", err)
	}
	if perm.Role != models.RoleOwner {
		t.Errorf("creator role = %s, want owner", perm.Role)
	}
}

func TestProjectCreate_CodeUppercasedAndUnique(t *testing.T) {
	db := newTestDB(t)
	creator := createTestUser(t, db, "creator", "user")
	svc := NewProjectService(db)

	project, err := svc.Create(&CreateProjectRequest{Name: "First", Code: "proj_1"}, creator.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Code != "PROJ_1" {
		t.Errorf("code = %s, want PROJ_1", project.Code)
	}

	_, err = svc.Create(&CreateProjectRequest{Name: "Second", Code: "PROJ_1"}, creator.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Fatalf("expected 409 on duplicate code, got %v", err)
	}
}

func TestProjectList_ScopedToGrants(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	alice := createTestUser(t, db, "alice", "user")
	bob := createTestUser(t, db, "bob", "user")
	admin := createTestUser(t, db, "admin", "admin")

	createTestProject(t, db, "PROJ_A", alice.ID)
	createTestProject(t, db, "PROJ_B", bob.ID)

	resp, err := svc.List(&ProjectListRequest{}, userCtx(alice))
	if err != nil {
		t.Fatalf("list as alice: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Code != "PROJ_A" {
		t.Errorf("alice should see only PROJ_A, got total=%d items=%v", resp.Total, resp.Items)
	}

	resp, err = svc.List(&ProjectListRequest{}, userCtx(admin))
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("admin should see both projects, got %d", resp.Total)
	}
}

func TestProjectList_NoGrantsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)

	alice := createTestUser(t, db, "alice", "user")
	nobody := createTestUser(t, db, "nobody", "user")
	createTestProject(t, db, "PROJ_A", alice.ID)

	resp, err := svc.List(&ProjectListRequest{}, userCtx(nobody))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 0 || len(resp.Items) != 0 {
		t.Errorf("user without grants should see nothing, got %d", resp.Total)
	}
}

func TestProjectDelete_CascadesChildren(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	episodes := NewEpisodeService(db)
	sequences := NewSequenceService(db)
	shots := NewShotService(db)

	episode, _ := episodes.Create(project.ID, &CreateEpisodeRequest{Name: "E01"})
	seq, _ := sequences.Create(project.ID, &CreateSequenceRequest{Name: "SEQ_010", EpisodeID: &episode.ID})
	if _, err := shots.Create(project.ID, &CreateShotRequest{SequenceID: seq.ID, Name: "SH010"}); err != nil {
		t.Fatalf("create shot: %v", err)
	}

	if err := NewProjectService(db).Delete(project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	var count int64
	db.Model(&models.Shot{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("shots should be gone, found %d", count)
	}
	db.Unscoped().Model(&models.ProjectPermission{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 0 {
		t.Errorf("permissions should be gone, found %d", count)
	}
}
