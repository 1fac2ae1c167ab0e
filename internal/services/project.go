package services

import (
	"errors"
	"strings"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db     *gorm.DB
	access *AccessService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, access: NewAccessService(db)}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Name     string `form:"name"`
	Status   string `form:"status"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Code        string   `json:"code" binding:"required"`
	Description string   `json:"description"`
	FPS         *float64 `json:"fps"`
}

type UpdateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	FPS         *float64 `json:"fps"`
	Status      string   `json:"status" binding:"omitempty,oneof=open closed"`
}

// List returns paginated projects visible to the caller: every project
// for admins, only projects with a permission row otherwise.
func (s *ProjectService) List(req *ProjectListRequest, ctx UserContext) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{})

	if !ctx.IsAdmin() {
		ids, err := s.access.AccessibleProjectIDs(ctx)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &ProjectListResponse{Page: req.Page, PageSize: req.PageSize, Items: []models.Project{}}, nil
		}
		query = query.Where("id IN ?", ids)
	}

	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a project and grants its creator the owner role, in
// one transaction so a project can never exist with permission rows
// and no owner.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Project
	if err := s.db.Where("code = ?", code).First(&existing).Error; err == nil {
		return nil, response.NewConflict("a project with this code already exists")
	}

	project := models.Project{
		Name:        req.Name,
		Code:        code,
		Description: req.Description,
		Status:      models.ProjectStatusOpen,
		CreatedBy:   userID,
	}
	if req.FPS != nil {
		project.FPS = *req.FPS
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		return s.access.AssignOwner(tx, project.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.FPS != nil {
		updates["fps"] = *req.FPS
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return project, nil
}

// Delete removes a project and everything under it.
func (s *ProjectService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewNotFound("project not found")
		}

		for _, m := range []interface{}{
			&models.ProjectPermission{},
			&models.Episode{},
			&models.Sequence{},
			&models.Shot{},
			&models.Asset{},
			&models.Version{},
			&models.Note{},
			&models.Playlist{},
		} {
			if err := tx.Where("project_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
