package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetStats returns production activity for the caller's projects
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	var req services.DashboardStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	stats, err := h.dashboardService.GetStats(middleware.GetUserContext(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
