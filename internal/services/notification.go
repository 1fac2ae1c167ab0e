package services

import (
	"context"
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

// NotificationService creates and serves in-app notifications. Fan-out
// runs through the task queue: one task per event, one notification
// row per project member.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type NotificationListRequest struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit"`
}

func (s *NotificationService) List(userID uint, req *NotificationListRequest) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if req != nil && req.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}

	limit := 50
	if req != nil && req.Limit > 0 && req.Limit <= 200 {
		limit = req.Limit
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// MarkRead marks a notification as read. Only the recipient may do so.
func (s *NotificationService) MarkRead(id, userID uint) error {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("notification not found")
		}
		return err
	}
	if notification.UserID != userID {
		return response.NewForbidden("notification belongs to another user")
	}
	if notification.ReadAt != nil {
		return nil
	}
	return s.db.Model(&notification).Update("read_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// ProcessTask delivers one event to all project members except the
// actor. Registered as the task queue processor.
func (s *NotificationService) ProcessTask(ctx context.Context, task *NotificationTask) error {
	var perms []models.ProjectPermission
	err := s.db.Where("project_id = ?", task.ProjectID).Find(&perms).Error
	if err != nil {
		return err
	}

	projectID := task.ProjectID
	for _, perm := range perms {
		if perm.UserID == task.ActorID {
			continue
		}
		notification := models.Notification{
			UserID:    perm.UserID,
			Kind:      task.Kind,
			Message:   task.Message,
			ProjectID: &projectID,
			NoteID:    task.NoteID,
			VersionID: task.VersionID,
		}
		if err := s.db.Create(&notification).Error; err != nil {
			logger.Error().Err(err).Uint("user_id", perm.UserID).Msg("failed to create notification")
			return err
		}
	}

	logger.Debug().
		Str("kind", task.Kind).
		Uint("project_id", task.ProjectID).
		Int("recipients", len(perms)).
		Msg("notification fan-out complete")
	return nil
}

// NotifyOwners creates a notification for every owner of a project,
// bypassing the queue. Used by the daily digest.
func (s *NotificationService) NotifyOwners(projectID uint, kind, message string) error {
	var perms []models.ProjectPermission
	err := s.db.Where("project_id = ? AND role = ?", projectID, models.RoleOwner).Find(&perms).Error
	if err != nil {
		return err
	}

	for _, perm := range perms {
		pid := projectID
		notification := models.Notification{
			UserID:    perm.UserID,
			Kind:      kind,
			Message:   message,
			ProjectID: &pid,
		}
		if err := s.db.Create(&notification).Error; err != nil {
			return err
		}
	}
	return nil
}
