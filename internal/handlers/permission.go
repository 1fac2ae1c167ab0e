package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PermissionHandler struct {
	db     *gorm.DB
	access *services.AccessService
}

func NewPermissionHandler(db *gorm.DB) *PermissionHandler {
	return &PermissionHandler{
		db:     db,
		access: services.NewAccessService(db),
	}
}

// List returns every grant on a project
// GET /api/projects/:id/permissions
func (h *PermissionHandler) List(c *gin.Context) {
	perms, err := h.access.List(middleware.GetProjectID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, perms)
}

type grantRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// Grant gives a user a role on a project
// POST /api/projects/:id/permissions
func (h *PermissionHandler) Grant(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	perm, err := h.access.Grant(middleware.GetProjectID(c), req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, perm)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole updates an existing grant
// PATCH /api/projects/:id/permissions/:userID
func (h *PermissionHandler) ChangeRole(c *gin.Context) {
	userID, ok := parseUintParam(c, "userID")
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	perm, err := h.access.ChangeRole(middleware.GetProjectID(c), userID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, perm)
}

// Revoke removes a user's grant from a project
// DELETE /api/projects/:id/permissions/:userID
func (h *PermissionHandler) Revoke(c *gin.Context) {
	userID, ok := parseUintParam(c, "userID")
	if !ok {
		return
	}

	if err := h.access.Revoke(middleware.GetProjectID(c), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "permission revoked"})
}

// MyProjects lists the caller's own grants with project details
// GET /api/permissions/my-projects
func (h *PermissionHandler) MyProjects(c *gin.Context) {
	var perms []models.ProjectPermission
	if err := h.db.Preload("Project").
		Where("user_id = ?", middleware.GetUserID(c)).
		Find(&perms).Error; err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, perms)
}
