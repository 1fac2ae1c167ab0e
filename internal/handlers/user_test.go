package handlers

import (
	"errors"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectPermission{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newDeleteContext(t *testing.T, callerID uint, targetID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/admin/users/"+strconv.Itoa(int(targetID)), nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(targetID))}}
	c.Set(middleware.ContextUserID, callerID)
	c.Set(middleware.ContextRole, "admin")
	return c, w
}

func TestDeleteUser_CascadesGrantsAndTokens(t *testing.T) {
	db := newHandlerTestDB(t)
	handler := NewUserHandler(db)

	admin := models.User{Username: "admin", Password: "x", Role: "admin", AuthType: "local"}
	alice := models.User{Username: "alice", Password: "x", Role: "user", AuthType: "local"}
	bob := models.User{Username: "bob", Password: "x", Role: "user", AuthType: "local"}
	for _, u := range []*models.User{&admin, &alice, &bob} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	project := models.Project{Name: "Demo", Code: "DEMO", Status: models.ProjectStatusOpen}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	grants := []models.ProjectPermission{
		{ProjectID: project.ID, UserID: alice.ID, Role: models.RoleOwner},
		{ProjectID: project.ID, UserID: bob.ID, Role: models.RoleOwner},
	}
	if err := db.Create(&grants).Error; err != nil {
		t.Fatalf("create grants: %v", err)
	}
	token := models.RefreshToken{UserID: bob.ID, TokenHash: "bob-token-hash"}
	if err := db.Create(&token).Error; err != nil {
		t.Fatalf("create refresh token: %v", err)
	}

	c, w := newDeleteContext(t, admin.ID, bob.ID)
	handler.Delete(c)
	if w.Code != 200 {
		t.Fatalf("delete user: status %d, body %s", w.Code, w.Body.String())
	}

	var ghost models.User
	if err := db.First(&ghost, bob.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("deleted user should be gone from the default scope, got %v", err)
	}

	var grantCount int64
	db.Unscoped().Model(&models.ProjectPermission{}).Where("user_id = ?", bob.ID).Count(&grantCount)
	if grantCount != 0 {
		t.Errorf("deleted user still holds %d permission rows", grantCount)
	}

	var tokenCount int64
	db.Model(&models.RefreshToken{}).Where("user_id = ?", bob.ID).Count(&tokenCount)
	if tokenCount != 0 {
		t.Errorf("deleted user still holds %d refresh tokens", tokenCount)
	}

	// With bob's grant gone alice is the sole owner again, so the
	// last-owner protection must hold.
	access := services.NewAccessService(db)
	_, err := access.ChangeRole(project.ID, alice.ID, models.RoleContributor)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Fatalf("demoting the remaining owner should be forbidden, got %v", err)
	}
}

func TestDeleteUser_SelfDeleteBlocked(t *testing.T) {
	db := newHandlerTestDB(t)
	handler := NewUserHandler(db)

	admin := models.User{Username: "admin", Password: "x", Role: "admin", AuthType: "local"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	c, w := newDeleteContext(t, admin.ID, admin.ID)
	handler.Delete(c)
	if w.Code != 400 {
		t.Fatalf("self delete: status %d, want 400", w.Code)
	}

	var still models.User
	if err := db.First(&still, admin.ID).Error; err != nil {
		t.Errorf("self delete must not remove the account: %v", err)
	}
}
