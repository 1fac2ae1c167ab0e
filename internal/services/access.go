package services

import (
	"errors"

	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"gorm.io/gorm"
)

// UserContext identifies the caller of a request. It is built from the
// JWT claims by the auth middleware and passed explicitly; never read
// it from shared state.
type UserContext struct {
	UserID uint
	Role   string // global role: admin, user
}

// IsAdmin reports whether the caller bypasses per-project checks.
func (c UserContext) IsAdmin() bool { return c.Role == "admin" }

// AccessService answers "may user U perform an action requiring at
// least role R on project P" and manages project permission rows.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// HasPermission returns true when the caller is an admin or holds a
// role on the project with rank >= minRole's rank.
func (s *AccessService) HasPermission(projectID uint, ctx UserContext, minRole string) (bool, error) {
	if ctx.IsAdmin() {
		return true, nil
	}

	var perm models.ProjectPermission
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, ctx.UserID).First(&perm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return models.RoleRank(perm.Role) >= models.RoleRank(minRole), nil
}

// VerifyAccess is HasPermission as an enforcement: it returns a
// Forbidden error when access is denied and nil otherwise.
func (s *AccessService) VerifyAccess(projectID uint, ctx UserContext, minRole string) error {
	ok, err := s.HasPermission(projectID, ctx, minRole)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewForbidden("you do not have access to this project")
	}
	return nil
}

// AccessibleProjectIDs returns every project id for admins, and the
// ids the user holds any permission on otherwise. Used to scope list
// and search queries.
func (s *AccessService) AccessibleProjectIDs(ctx UserContext) ([]uint, error) {
	var ids []uint
	if ctx.IsAdmin() {
		if err := s.db.Model(&models.Project{}).Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		return ids, nil
	}

	err := s.db.Model(&models.ProjectPermission{}).
		Where("user_id = ?", ctx.UserID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// List returns all permission rows of a project with users preloaded.
func (s *AccessService) List(projectID uint) ([]models.ProjectPermission, error) {
	var perms []models.ProjectPermission
	err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// Grant creates a permission row. It fails with Conflict when the user
// already holds a role on the project.
func (s *AccessService) Grant(projectID, userID uint, role string) (*models.ProjectPermission, error) {
	if !models.ValidRole(role) {
		return nil, response.NewBadRequest("invalid role, must be 'owner', 'contributor', or 'viewer'")
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, response.NewNotFound("project not found")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, response.NewNotFound("user not found")
	}

	var existing models.ProjectPermission
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil, response.NewConflict("user already has a permission on this project")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	perm := models.ProjectPermission{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.Create(&perm).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&perm, perm.ID)
	return &perm, nil
}

// AssignOwner upserts an owner permission for the user: it creates the
// row when missing, upgrades a lower role, and does nothing when the
// user already owns the project. Called once at project creation for
// the creator; tx is the creation transaction.
func (s *AccessService) AssignOwner(tx *gorm.DB, projectID, userID uint) error {
	var perm models.ProjectPermission
	err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		perm = models.ProjectPermission{
			ProjectID: projectID,
			UserID:    userID,
			Role:      models.RoleOwner,
		}
		return tx.Create(&perm).Error
	}
	if err != nil {
		return err
	}

	if perm.Role == models.RoleOwner {
		return nil
	}
	return tx.Model(&perm).Update("role", models.RoleOwner).Error
}

// ChangeRole updates the role of an existing permission row. Demoting
// an owner requires another owner to remain; the owner count is
// re-read inside the update transaction so two concurrent demotions
// cannot both slip past the check.
func (s *AccessService) ChangeRole(projectID, userID uint, newRole string) (*models.ProjectPermission, error) {
	if !models.ValidRole(newRole) {
		return nil, response.NewBadRequest("invalid role, must be 'owner', 'contributor', or 'viewer'")
	}

	var perm models.ProjectPermission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&perm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("permission not found")
			}
			return err
		}

		if perm.Role == models.RoleOwner && newRole != models.RoleOwner {
			owners, err := s.ownerCount(tx, projectID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return response.NewForbidden("cannot remove the last owner")
			}
		}

		return tx.Model(&perm).Update("role", newRole).Error
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&perm, perm.ID)
	return &perm, nil
}

// Revoke deletes a permission row, with the same last-owner protection
// as ChangeRole. The row is removed for real so the unique
// (project, user) index frees up for a later re-grant.
func (s *AccessService) Revoke(projectID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var perm models.ProjectPermission
		if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&perm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("permission not found")
			}
			return err
		}

		if perm.Role == models.RoleOwner {
			owners, err := s.ownerCount(tx, projectID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return response.NewForbidden("cannot remove the last owner")
			}
		}

		return tx.Delete(&perm).Error
	})
}

func (s *AccessService) ownerCount(tx *gorm.DB, projectID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.ProjectPermission{}).
		Where("project_id = ? AND role = ?", projectID, models.RoleOwner).
		Count(&count).Error
	return count, err
}
