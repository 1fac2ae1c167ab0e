package services

import (
	"time"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db     *gorm.DB
	access *AccessService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, access: NewAccessService(db)}
}

type DashboardStatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type DashboardStats struct {
	OpenProjects  int64 `json:"open_projects"`
	TotalShots    int64 `json:"total_shots"`
	TotalAssets   int64 `json:"total_assets"`
	NewVersions   int64 `json:"new_versions"`
	NewNotes      int64 `json:"new_notes"`
	Collaborators int64 `json:"collaborators"`
}

type StatusBreakdown struct {
	StatusID   uint   `json:"status_id"`
	StatusName string `json:"status_name"`
	Color      string `json:"color"`
	ShotCount  int64  `json:"shot_count"`
	AssetCount int64  `json:"asset_count"`
}

type ProjectActivity struct {
	ProjectID    uint   `json:"project_id"`
	ProjectName  string `json:"project_name"`
	ProjectCode  string `json:"project_code"`
	VersionCount int64  `json:"version_count"`
	NoteCount    int64  `json:"note_count"`
}

type DashboardResponse struct {
	Stats           DashboardStats    `json:"stats"`
	StatusBreakdown []StatusBreakdown `json:"status_breakdown"`
	ProjectActivity []ProjectActivity `json:"project_activity"`
}

// GetStats aggregates production activity over the requested window,
// limited to the projects the caller can access.
func (s *DashboardService) GetStats(userCtx UserContext, req *DashboardStatsRequest) (*DashboardResponse, error) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			startDate = time.Now().AddDate(0, 0, -7)
		}
	} else {
		startDate = time.Now().AddDate(0, 0, -7)
	}

	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			endDate = time.Now()
		}
		endDate = endDate.Add(24*time.Hour - time.Second)
	} else {
		endDate = time.Now()
	}

	projectIDs, err := s.access.AccessibleProjectIDs(userCtx)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		StatusBreakdown: []StatusBreakdown{},
		ProjectActivity: []ProjectActivity{},
	}
	if len(projectIDs) == 0 {
		return resp, nil
	}

	s.db.Model(&models.Project{}).
		Where("id IN ? AND status = ?", projectIDs, models.ProjectStatusOpen).
		Count(&resp.Stats.OpenProjects)

	s.db.Model(&models.Shot{}).
		Where("project_id IN ?", projectIDs).
		Count(&resp.Stats.TotalShots)

	s.db.Model(&models.Asset{}).
		Where("project_id IN ?", projectIDs).
		Count(&resp.Stats.TotalAssets)

	s.db.Model(&models.Version{}).
		Where("project_id IN ? AND created_at BETWEEN ? AND ?", projectIDs, startDate, endDate).
		Count(&resp.Stats.NewVersions)

	s.db.Model(&models.Note{}).
		Where("project_id IN ? AND created_at BETWEEN ? AND ?", projectIDs, startDate, endDate).
		Count(&resp.Stats.NewNotes)

	s.db.Model(&models.ProjectPermission{}).
		Where("project_id IN ?", projectIDs).
		Distinct("user_id").
		Count(&resp.Stats.Collaborators)

	if err := s.db.Model(&models.Status{}).
		Select(`statuses.id AS status_id,
			statuses.name AS status_name,
			statuses.color,
			(SELECT COUNT(*) FROM shots WHERE shots.status_id = statuses.id AND shots.project_id IN ? AND shots.deleted_at IS NULL) AS shot_count,
			(SELECT COUNT(*) FROM assets WHERE assets.status_id = statuses.id AND assets.project_id IN ? AND assets.deleted_at IS NULL) AS asset_count`,
			projectIDs, projectIDs).
		Order("statuses.id").
		Scan(&resp.StatusBreakdown).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Project{}).
		Select(`projects.id AS project_id,
			projects.name AS project_name,
			projects.code AS project_code,
			(SELECT COUNT(*) FROM versions WHERE versions.project_id = projects.id AND versions.created_at BETWEEN ? AND ? AND versions.deleted_at IS NULL) AS version_count,
			(SELECT COUNT(*) FROM notes WHERE notes.project_id = projects.id AND notes.created_at BETWEEN ? AND ? AND notes.deleted_at IS NULL) AS note_count`,
			startDate, endDate, startDate, endDate).
		Where("projects.id IN ?", projectIDs).
		Order("version_count DESC").
		Limit(10).
		Scan(&resp.ProjectActivity).Error; err != nil {
		return nil, err
	}

	return resp, nil
}
