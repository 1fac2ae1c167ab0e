package services

import (
	"errors"
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
)

func TestHasPermission_RoleHierarchy(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	contributor := createTestUser(t, db, "contributor", "user")
	viewer := createTestUser(t, db, "viewer", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, contributor.ID, models.RoleContributor); err != nil {
		t.Fatalf("grant contributor: %v", err)
	}
	if _, err := access.Grant(project.ID, viewer.ID, models.RoleViewer); err != nil {
		t.Fatalf("grant viewer: %v", err)
	}

	tests := []struct {
		name    string
		user    *models.User
		minRole string
		want    bool
	}{
		{"owner satisfies viewer", owner, models.RoleViewer, true},
		{"owner satisfies contributor", owner, models.RoleContributor, true},
		{"owner satisfies owner", owner, models.RoleOwner, true},
		{"contributor satisfies viewer", contributor, models.RoleViewer, true},
		{"contributor satisfies contributor", contributor, models.RoleContributor, true},
		{"contributor denied owner", contributor, models.RoleOwner, false},
		{"viewer satisfies viewer", viewer, models.RoleViewer, true},
		{"viewer denied contributor", viewer, models.RoleContributor, false},
		{"viewer denied owner", viewer, models.RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := access.HasPermission(project.ID, userCtx(tt.user), tt.minRole)
			if err != nil {
				t.Fatalf("HasPermission: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasPermission = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasPermission_NoGrant(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	outsider := createTestUser(t, db, "outsider", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	ok, err := access.HasPermission(project.ID, userCtx(outsider), models.RoleViewer)
	if err != nil {
		t.Fatalf("HasPermission: %v", err)
	}
	if ok {
		t.Error("user without a grant should be denied")
	}
}

func TestHasPermission_AdminBypass(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	admin := createTestUser(t, db, "admin", "admin")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	for _, minRole := range []string{models.RoleViewer, models.RoleContributor, models.RoleOwner} {
		ok, err := access.HasPermission(project.ID, userCtx(admin), minRole)
		if err != nil {
			t.Fatalf("HasPermission(%s): %v", minRole, err)
		}
		if !ok {
			t.Errorf("admin should bypass %s check without a grant", minRole)
		}
	}

	// A project inserted without any permission rows is still visible
	// to an admin.
	orphan := models.Project{Name: "Orphan", Code: "ORPHAN", Status: models.ProjectStatusOpen}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatalf("create orphan project: %v", err)
	}
	ok, err := access.HasPermission(orphan.ID, userCtx(admin), models.RoleOwner)
	if err != nil {
		t.Fatalf("HasPermission(orphan): %v", err)
	}
	if !ok {
		t.Errorf("admin should bypass checks on a project with no grants")
	}
}

func TestVerifyAccess_Forbidden(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	viewer := createTestUser(t, db, "viewer", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, viewer.ID, models.RoleViewer); err != nil {
		t.Fatalf("grant: %v", err)
	}

	err := access.VerifyAccess(project.ID, userCtx(viewer), models.RoleContributor)
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != 403 {
		t.Errorf("HTTPStatus = %d, want 403", appErr.HTTPStatus)
	}
}

func TestGrant_DuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	other := createTestUser(t, db, "other", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, other.ID, models.RoleViewer); err != nil {
		t.Fatalf("first grant: %v", err)
	}

	_, err := access.Grant(project.ID, other.ID, models.RoleContributor)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Fatalf("expected 409 conflict on duplicate grant, got %v", err)
	}
}

func TestGrant_InvalidRole(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	other := createTestUser(t, db, "other", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, other.ID, "superuser"); err == nil {
		t.Error("grant with unknown role should fail")
	}
}

func TestChangeRole_LastOwnerProtected(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	_, err := access.ChangeRole(project.ID, owner.ID, models.RoleViewer)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Fatalf("expected 403 demoting the last owner, got %v", err)
	}

	// The grant must be untouched
	var perm models.ProjectPermission
	if err := db.Where("project_id = ? AND user_id = ?", project.ID, owner.ID).First(&perm).Error; err != nil {
		t.Fatalf("reload grant: %v", err)
	}
	if perm.Role != models.RoleOwner {
		t.Errorf("role = %s, want owner", perm.Role)
	}
}

func TestRevoke_LastOwnerProtected(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	err := access.Revoke(project.ID, owner.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Fatalf("expected 403 revoking the last owner, got %v", err)
	}
}

func TestChangeRole_SecondOwnerAllowsDemotion(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	second := createTestUser(t, db, "second", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, second.ID, models.RoleOwner); err != nil {
		t.Fatalf("grant second owner: %v", err)
	}

	perm, err := access.ChangeRole(project.ID, owner.ID, models.RoleContributor)
	if err != nil {
		t.Fatalf("demotion with a second owner should succeed: %v", err)
	}
	if perm.Role != models.RoleContributor {
		t.Errorf("role = %s, want contributor", perm.Role)
	}

	// Now second is the last owner and cannot be removed
	if err := access.Revoke(project.ID, second.ID); err == nil {
		t.Error("revoking the only remaining owner should fail")
	}
}

func TestRevoke_NonOwnerAlwaysAllowed(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	viewer := createTestUser(t, db, "viewer", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, viewer.ID, models.RoleViewer); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := access.Revoke(project.ID, viewer.ID); err != nil {
		t.Fatalf("revoke viewer: %v", err)
	}

	ok, err := access.HasPermission(project.ID, userCtx(viewer), models.RoleViewer)
	if err != nil {
		t.Fatalf("HasPermission: %v", err)
	}
	if ok {
		t.Error("revoked user should lose access")
	}
}

func TestRevoke_ThenRegrant(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	viewer := createTestUser(t, db, "viewer", "user")
	project := createTestProject(t, db, "PROJ_1", owner.ID)

	if _, err := access.Grant(project.ID, viewer.ID, models.RoleViewer); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := access.Revoke(project.ID, viewer.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	// The revoked row must not linger and block the unique
	// (project, user) index on a fresh grant.
	perm, err := access.Grant(project.ID, viewer.ID, models.RoleContributor)
	if err != nil {
		t.Fatalf("re-grant after revoke should succeed: %v", err)
	}
	if perm.Role != models.RoleContributor {
		t.Errorf("re-granted role = %q, want contributor", perm.Role)
	}

	var total int64
	db.Unscoped().Model(&models.ProjectPermission{}).
		Where("project_id = ? AND user_id = ?", project.ID, viewer.ID).
		Count(&total)
	if total != 1 {
		t.Errorf("expected exactly 1 row for the pair after re-grant, got %d", total)
	}
}

func TestAccessibleProjectIDs(t *testing.T) {
	db := newTestDB(t)
	access := NewAccessService(db)

	owner := createTestUser(t, db, "owner", "user")
	other := createTestUser(t, db, "other", "user")
	admin := createTestUser(t, db, "admin", "admin")

	p1 := createTestProject(t, db, "PROJ_1", owner.ID)
	p2 := createTestProject(t, db, "PROJ_2", other.ID)

	ids, err := access.AccessibleProjectIDs(userCtx(owner))
	if err != nil {
		t.Fatalf("AccessibleProjectIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != p1.ID {
		t.Errorf("owner should see only %d, got %v", p1.ID, ids)
	}

	ids, err = access.AccessibleProjectIDs(userCtx(admin))
	if err != nil {
		t.Fatalf("AccessibleProjectIDs admin: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("admin should see both projects, got %v", ids)
	}
	_ = p2
}
