package models

import (
	"fmt"

	"github.com/RadW2020/shogunito/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Project{},
		&ProjectPermission{},
		&Episode{},
		&Sequence{},
		&Shot{},
		&Asset{},
		&Version{},
		&Note{},
		&Status{},
		&Playlist{},
		&PlaylistItem{},
		&Notification{},
		&RefreshToken{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default workflow statuses and system
// configuration rows if they do not exist yet.
func SeedDefaultData() error {
	defaultStatuses := []Status{
		{Name: "Todo", ShortName: "todo", Color: "#9e9e9e", IsDefault: true, SortOrder: 1},
		{Name: "Work In Progress", ShortName: "wip", Color: "#2196f3", SortOrder: 2},
		{Name: "Waiting For Approval", ShortName: "wfa", Color: "#ff9800", SortOrder: 3},
		{Name: "Retake", ShortName: "retake", Color: "#f44336", SortOrder: 4},
		{Name: "Approved", ShortName: "approved", Color: "#8bc34a", SortOrder: 5},
		{Name: "Done", ShortName: "done", Color: "#4caf50", SortOrder: 6},
	}

	for _, st := range defaultStatuses {
		var count int64
		DB.Model(&Status{}).Where("name = ?", st.Name).Count(&count)
		if count == 0 {
			if err := DB.Create(&st).Error; err != nil {
				return err
			}
		}
	}

	defaultConfigs := []SystemConfig{
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System Log Retention Days"},
		{Key: "digest_time", Value: "18:00", Type: "string", Group: "digest", Label: "Daily Digest Send Time"},
		{Key: "digest_enabled", Value: "false", Type: "bool", Group: "digest", Label: "Enable Daily Digest"},
		{Key: "digest_region", Value: "US", Type: "string", Group: "digest", Label: "Studio Holiday Region"},
	}

	for _, cfg := range defaultConfigs {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
