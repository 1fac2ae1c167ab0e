package handlers

import (
	"strconv"

	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShotHandler struct {
	shotService *services.ShotService
}

func NewShotHandler(db *gorm.DB) *ShotHandler {
	return &ShotHandler{
		shotService: services.NewShotService(db),
	}
}

// List returns a project's shots, optionally filtered by sequence
// GET /api/projects/:id/shots
func (h *ShotHandler) List(c *gin.Context) {
	var sequenceID *uint
	if v := c.Query("sequence_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid sequence_id")
			return
		}
		id := uint(parsed)
		sequenceID = &id
	}

	shots, err := h.shotService.List(middleware.GetProjectID(c), sequenceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, shots)
}

// GetByID returns a shot
// GET /api/projects/:id/shots/:shotID
func (h *ShotHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "shotID")
	if !ok {
		return
	}

	shot, err := h.shotService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if shot.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "shot not found")
		return
	}

	response.Success(c, shot)
}

// Create adds a shot to a sequence
// POST /api/projects/:id/shots
func (h *ShotHandler) Create(c *gin.Context) {
	var req services.CreateShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	shot, err := h.shotService.Create(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, shot)
}

// Update updates a shot
// PUT /api/projects/:id/shots/:shotID
func (h *ShotHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "shotID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	var req services.UpdateShotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	shot, err := h.shotService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, shot)
}

// Delete removes a shot
// DELETE /api/projects/:id/shots/:shotID
func (h *ShotHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "shotID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.shotService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "shot deleted"})
}

func (h *ShotHandler) inProject(c *gin.Context, id uint) bool {
	shot, err := h.shotService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if shot.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "shot not found")
		return false
	}
	return true
}
