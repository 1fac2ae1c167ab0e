package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(db *gorm.DB) *AssetHandler {
	return &AssetHandler{
		assetService: services.NewAssetService(db),
	}
}

// List returns a project's assets, optionally filtered by type
// GET /api/projects/:id/assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assetService.List(middleware.GetProjectID(c), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, assets)
}

// GetByID returns an asset
// GET /api/projects/:id/assets/:assetID
func (h *AssetHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "assetID")
	if !ok {
		return
	}

	asset, err := h.assetService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if asset.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "asset not found")
		return
	}

	response.Success(c, asset)
}

// Create adds an asset to a project
// POST /api/projects/:id/assets
func (h *AssetHandler) Create(c *gin.Context) {
	var req services.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetService.Create(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, asset)
}

// Update updates an asset
// PUT /api/projects/:id/assets/:assetID
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "assetID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	var req services.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, asset)
}

// Delete removes an asset
// DELETE /api/projects/:id/assets/:assetID
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "assetID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.assetService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "asset deleted"})
}

func (h *AssetHandler) inProject(c *gin.Context, id uint) bool {
	asset, err := h.assetService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if asset.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "asset not found")
		return false
	}
	return true
}
