package handlers

import (
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(db *gorm.DB, queue services.TaskQueue) *NoteHandler {
	return &NoteHandler{
		noteService: services.NewNoteService(db, queue),
	}
}

// List returns a project's notes filtered by target
// GET /api/projects/:id/notes
func (h *NoteHandler) List(c *gin.Context) {
	var req services.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	notes, err := h.noteService.List(middleware.GetProjectID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notes)
}

// Create attaches a note to a shot, asset or version. A note may also
// move its target to a new status.
// POST /api/projects/:id/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	note, err := h.noteService.Create(middleware.GetProjectID(c), &req, middleware.GetUserContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, note)
}

// Delete removes a note; only the author or an admin may do this
// DELETE /api/projects/:id/notes/:noteID
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "noteID")
	if !ok {
		return
	}

	if err := h.noteService.Delete(id, middleware.GetUserContext(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "note deleted"})
}
