package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EpisodeHandler struct {
	episodeService *services.EpisodeService
}

func NewEpisodeHandler(db *gorm.DB) *EpisodeHandler {
	return &EpisodeHandler{
		episodeService: services.NewEpisodeService(db),
	}
}

// List returns a project's episodes
// GET /api/projects/:id/episodes
func (h *EpisodeHandler) List(c *gin.Context) {
	episodes, err := h.episodeService.List(middleware.GetProjectID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, episodes)
}

// GetByID returns an episode
// GET /api/projects/:id/episodes/:episodeID
func (h *EpisodeHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "episodeID")
	if !ok {
		return
	}

	episode, err := h.episodeService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if episode.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "episode not found")
		return
	}

	response.Success(c, episode)
}

// Create adds an episode to a project
// POST /api/projects/:id/episodes
func (h *EpisodeHandler) Create(c *gin.Context) {
	var req services.CreateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	episode, err := h.episodeService.Create(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, episode)
}

// Update updates an episode
// PUT /api/projects/:id/episodes/:episodeID
func (h *EpisodeHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "episodeID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	var req services.UpdateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	episode, err := h.episodeService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, episode)
}

// Delete removes an episode; its sequences stay but lose the link
// DELETE /api/projects/:id/episodes/:episodeID
func (h *EpisodeHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "episodeID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.episodeService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "episode deleted"})
}

func (h *EpisodeHandler) inProject(c *gin.Context, id uint) bool {
	episode, err := h.episodeService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if episode.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "episode not found")
		return false
	}
	return true
}
