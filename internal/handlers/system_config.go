package handlers

import (
	"net/http"

	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemConfigHandler struct {
	configService *services.SystemConfigService
	digestService *services.DailyDigestService
}

func NewSystemConfigHandler(db *gorm.DB, digest *services.DailyDigestService) *SystemConfigHandler {
	return &SystemConfigHandler{
		configService: services.NewSystemConfigService(db),
		digestService: digest,
	}
}

type DigestConfigResponse struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
	Region  string `json:"region"`
}

type UpdateDigestConfigRequest struct {
	Enabled *bool   `json:"enabled"`
	Time    *string `json:"time"`
	Region  *string `json:"region"`
}

func (h *SystemConfigHandler) GetDigestConfig(c *gin.Context) {
	c.JSON(http.StatusOK, DigestConfigResponse{
		Enabled: h.configService.GetBool("digest_enabled", false),
		Time:    h.configService.GetWithDefault("digest_time", "18:00"),
		Region:  h.configService.GetWithDefault("digest_region", "US"),
	})
}

func (h *SystemConfigHandler) UpdateDigestConfig(c *gin.Context) {
	var req UpdateDigestConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Enabled != nil {
		value := "false"
		if *req.Enabled {
			value = "true"
		}
		if err := h.configService.Set("digest_enabled", value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Time != nil {
		if err := h.configService.Set("digest_time", *req.Time); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Region != nil {
		if err := h.configService.Set("digest_region", *req.Region); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if h.digestService != nil {
		h.digestService.ReloadSchedule()
	}

	h.GetDigestConfig(c)
}

func (h *SystemConfigHandler) GetSupportedRegions(c *gin.Context) {
	c.JSON(http.StatusOK, services.NewHolidayService().GetSupportedCountries())
}
