package handlers

import (
	"strconv"

	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VersionHandler struct {
	versionService *services.VersionService
}

func NewVersionHandler(db *gorm.DB, queue services.TaskQueue) *VersionHandler {
	return &VersionHandler{
		versionService: services.NewVersionService(db, queue),
	}
}

// List returns a project's versions, optionally scoped to one shot or asset
// GET /api/projects/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	shotID, ok := optionalUintQuery(c, "shot_id")
	if !ok {
		return
	}
	assetID, ok := optionalUintQuery(c, "asset_id")
	if !ok {
		return
	}

	versions, err := h.versionService.List(middleware.GetProjectID(c), shotID, assetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, versions)
}

// GetByID returns a version
// GET /api/projects/:id/versions/:versionID
func (h *VersionHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "versionID")
	if !ok {
		return
	}

	version, err := h.versionService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if version.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "version not found")
		return
	}

	response.Success(c, version)
}

// Create publishes a new version of a shot or asset
// POST /api/projects/:id/versions
func (h *VersionHandler) Create(c *gin.Context) {
	var req services.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	version, err := h.versionService.Create(middleware.GetProjectID(c), &req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, version)
}

// Delete removes a version and its playlist entries
// DELETE /api/projects/:id/versions/:versionID
func (h *VersionHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "versionID")
	if !ok {
		return
	}

	version, err := h.versionService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if version.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "version not found")
		return
	}

	if err := h.versionService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "version deleted"})
}

func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	parsed, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return nil, false
	}
	id := uint(parsed)
	return &id, true
}
