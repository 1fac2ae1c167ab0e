package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
}

func NewPlaylistHandler(db *gorm.DB) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: services.NewPlaylistService(db),
	}
}

// List returns a project's playlists
// GET /api/projects/:id/playlists
func (h *PlaylistHandler) List(c *gin.Context) {
	playlists, err := h.playlistService.List(middleware.GetProjectID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, playlists)
}

// GetByID returns a playlist with its ordered versions
// GET /api/projects/:id/playlists/:playlistID
func (h *PlaylistHandler) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "playlistID")
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if playlist.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "playlist not found")
		return
	}

	response.Success(c, playlist)
}

// Create makes a new review playlist
// POST /api/projects/:id/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req services.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlist, err := h.playlistService.Create(middleware.GetProjectID(c), &req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, playlist)
}

// AddItem appends a version to a playlist
// POST /api/projects/:id/playlists/:playlistID/items
func (h *PlaylistHandler) AddItem(c *gin.Context) {
	id, ok := parseUintParam(c, "playlistID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	var req services.AddPlaylistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	playlist, err := h.playlistService.AddItem(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, playlist)
}

// RemoveItem drops a version from a playlist
// DELETE /api/projects/:id/playlists/:playlistID/items/:versionID
func (h *PlaylistHandler) RemoveItem(c *gin.Context) {
	id, ok := parseUintParam(c, "playlistID")
	if !ok {
		return
	}
	versionID, ok := parseUintParam(c, "versionID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.playlistService.RemoveItem(id, versionID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "item removed"})
}

// Delete removes a playlist
// DELETE /api/projects/:id/playlists/:playlistID
func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "playlistID")
	if !ok {
		return
	}
	if !h.inProject(c, id) {
		return
	}

	if err := h.playlistService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "playlist deleted"})
}

// GetShared resolves a share token to a read-only playlist view. No
// authentication; the token is the capability.
// GET /api/playlists/shared/:token
func (h *PlaylistHandler) GetShared(c *gin.Context) {
	playlist, err := h.playlistService.GetByShareToken(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, playlist)
}

func (h *PlaylistHandler) inProject(c *gin.Context, id uint) bool {
	playlist, err := h.playlistService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if playlist.ProjectID != middleware.GetProjectID(c) {
		response.NotFound(c, "playlist not found")
		return false
	}
	return true
}
