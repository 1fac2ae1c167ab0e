package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(db *gorm.DB) *StatusHandler {
	return &StatusHandler{
		statusService: services.NewStatusService(db),
	}
}

// List returns the workflow statuses
// GET /api/statuses
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, statuses)
}

// Create adds a workflow status (admin only)
// POST /api/statuses
func (h *StatusHandler) Create(c *gin.Context) {
	var req services.CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := h.statusService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, status)
}

// Update updates a workflow status (admin only)
// PUT /api/statuses/:id
func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	status, err := h.statusService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, status)
}

// Delete removes an unused workflow status (admin only)
// DELETE /api/statuses/:id
func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.statusService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "status deleted"})
}
