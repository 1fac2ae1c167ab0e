package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SequenceHandler struct {
	sequenceService *services.SequenceService
}

func NewSequenceHandler(db *gorm.DB) *SequenceHandler {
	return &SequenceHandler{
		sequenceService: services.NewSequenceService(db),
	}
}

// List returns a project's sequences, optionally filtered by episode
// GET /api/projects/:id/sequences
func (h *SequenceHandler) List(c *gin.Context) {
	var req services.SequenceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sequences, err := h.sequenceService.List(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, sequences)
}

// GetByID returns a sequence
// GET /api/projects/:id/sequences/:sequenceID
func (h *SequenceHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "sequenceID")
	if !ok {
		return
	}

	sequence, err := h.sequenceService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if sequence.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "sequence not found")
		return
	}

	response.Success(c, sequence)
}

// Create adds a sequence to a project
// POST /api/projects/:id/sequences
func (h *SequenceHandler) Create(c *gin.Context) {
	var req services.CreateSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sequence, err := h.sequenceService.Create(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, sequence)
}

// Update updates a sequence. Moving it between episodes or changing its
// duration refreshes the affected episode totals.
// PUT /api/projects/:id/sequences/:sequenceID
func (h *SequenceHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "sequenceID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	var req services.UpdateSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sequence, err := h.sequenceService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, sequence)
}

// Delete removes a sequence and its shots
// DELETE /api/projects/:id/sequences/:sequenceID
func (h *SequenceHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "sequenceID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.sequenceService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "sequence deleted"})
}

func (h *SequenceHandler) inProject(c *gin.Context, id uint) bool {
	sequence, err := h.sequenceService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if sequence.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "sequence not found")
		return false
	}
	return true
}
