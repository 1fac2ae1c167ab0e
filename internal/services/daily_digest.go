package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DailyDigestService sends project owners a once-a-day summary of the
// previous day's versions and notes. The schedule is driven by the
// digest_time system config and skips non-working days for the
// configured region.
type DailyDigestService struct {
	db            *gorm.DB
	configSvc     *SystemConfigService
	notifications *NotificationService
	holidays      *HolidayService

	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

func NewDailyDigestService(db *gorm.DB, notifications *NotificationService) *DailyDigestService {
	return &DailyDigestService{
		db:            db,
		configSvc:     NewSystemConfigService(db),
		notifications: notifications,
		holidays:      NewHolidayService(),
	}
}

func (s *DailyDigestService) StartScheduler() {
	s.cronScheduler = cron.New()
	s.updateSchedule()
	s.cronScheduler.Start()
}

func (s *DailyDigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *DailyDigestService) updateSchedule() {
	if s.currentEntryID != 0 {
		s.cronScheduler.Remove(s.currentEntryID)
		s.currentEntryID = 0
	}

	digestTime := s.getDigestTime()
	parts := strings.Split(digestTime, ":")
	if len(parts) != 2 {
		logger.Warnf("[DailyDigest] Invalid digest_time %q, using 18:00", digestTime)
		parts = []string{"18", "00"}
	}

	cronExpr := fmt.Sprintf("%s %s * * *", parts[1], parts[0])

	entryID, err := s.cronScheduler.AddFunc(cronExpr, func() {
		s.runScheduled()
	})
	if err != nil {
		logger.Errorf("[DailyDigest] Failed to add cron job: %v", err)
		return
	}

	s.currentEntryID = entryID
	logger.Infof("[DailyDigest] Scheduled at %s (cron: %s)", digestTime, cronExpr)
}

// ReloadSchedule re-reads digest_time and reschedules the job. Called
// after an admin changes the digest config.
func (s *DailyDigestService) ReloadSchedule() {
	if s.cronScheduler == nil {
		return
	}
	s.updateSchedule()
}

func (s *DailyDigestService) getDigestTime() string {
	return s.configSvc.GetWithDefault("digest_time", "18:00")
}

func (s *DailyDigestService) isEnabled() bool {
	return s.configSvc.GetBool("digest_enabled", false)
}

func (s *DailyDigestService) getRegion() string {
	return s.configSvc.GetWithDefault("digest_region", "US")
}

func (s *DailyDigestService) runScheduled() {
	if !s.isEnabled() {
		logger.Debug().Msg("[DailyDigest] Digest disabled, skipping")
		return
	}

	now := time.Now()
	region := s.getRegion()
	if !s.holidays.IsWorkday(now, region) {
		logger.Infof("[DailyDigest] %s is not a workday in %s, skipping", now.Format("2006-01-02"), region)
		return
	}

	if err := s.SendDigest(now); err != nil {
		logger.Error().Err(err).Msg("[DailyDigest] Failed to send digest")
		LogError("digest", "send", err.Error(), nil, "", "", nil)
	}
}

type projectDigest struct {
	ProjectID    uint
	ProjectName  string
	VersionCount int64
	NoteCount    int64
}

// SendDigest summarizes activity in the 24 hours before asOf for every
// open project and notifies that project's owners. Projects with no
// activity are skipped.
func (s *DailyDigestService) SendDigest(asOf time.Time) error {
	endTime := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	startTime := endTime.AddDate(0, 0, -1)

	var projects []models.Project
	if err := s.db.Where("status = ?", models.ProjectStatusOpen).Find(&projects).Error; err != nil {
		return err
	}

	sent := 0
	for _, project := range projects {
		digest, err := s.collectActivity(project, startTime, endTime)
		if err != nil {
			logger.Errorf("[DailyDigest] Failed to collect activity for project %d: %v", project.ID, err)
			continue
		}
		if digest.VersionCount == 0 && digest.NoteCount == 0 {
			continue
		}

		message := fmt.Sprintf("%s — %s: %d new versions, %d new notes",
			digest.ProjectName, startTime.Format("2006-01-02"), digest.VersionCount, digest.NoteCount)

		if err := s.notifications.NotifyOwners(project.ID, models.NotificationKindDigest, message); err != nil {
			logger.Errorf("[DailyDigest] Failed to notify owners of project %d: %v", project.ID, err)
			continue
		}
		sent++
	}

	LogInfo("digest", "send", fmt.Sprintf("Sent daily digest for %d projects", sent), nil, "", "", nil)
	logger.Infof("[DailyDigest] Sent digest for %d projects (%s)", sent, startTime.Format("2006-01-02"))
	return nil
}

func (s *DailyDigestService) collectActivity(project models.Project, startTime, endTime time.Time) (*projectDigest, error) {
	digest := &projectDigest{
		ProjectID:   project.ID,
		ProjectName: project.Name,
	}

	if err := s.db.Model(&models.Version{}).
		Where("project_id = ? AND created_at >= ? AND created_at < ?", project.ID, startTime, endTime).
		Count(&digest.VersionCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Note{}).
		Where("project_id = ? AND created_at >= ? AND created_at < ?", project.ID, startTime, endTime).
		Count(&digest.NoteCount).Error; err != nil {
		return nil, err
	}

	return digest, nil
}
