package services

import (
	"testing"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&models.Episode{},
		&models.Sequence{},
		&models.Shot{},
		&models.Asset{},
		&models.Version{},
		&models.Note{},
		&models.Status{},
		&models.Playlist{},
		&models.PlaylistItem{},
		&models.Notification{},
		&models.RefreshToken{},
		&models.SystemConfig{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	statuses := []models.Status{
		{Name: "Todo", ShortName: "todo", Color: "#9e9e9e", IsDefault: true, SortOrder: 1},
		{Name: "Work In Progress", ShortName: "wip", Color: "#2196f3", SortOrder: 2},
		{Name: "Approved", ShortName: "approved", Color: "#4caf50", SortOrder: 3},
	}
	if err := db.Create(&statuses).Error; err != nil {
		t.Fatalf("failed to seed statuses: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Password: "not-a-real-hash",
		FullName: username,
		Role:     role,
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, code string, ownerID uint) *models.Project {
	t.Helper()

	svc := NewProjectService(db)
	project, err := svc.Create(&CreateProjectRequest{
		Name: "Project " + code,
		Code: code,
	}, ownerID)
	if err != nil {
		t.Fatalf("failed to create project %s: %v", code, err)
	}
	return project
}

func userCtx(user *models.User) UserContext {
	return UserContext{UserID: user.ID, Role: user.Role}
}

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }
