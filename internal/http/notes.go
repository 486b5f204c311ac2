package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/database/notes"
)

type NotesController struct {
	store NoteStore
}

func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{store: store}
}

type noteRequest struct {
	Content string `json:"content"`
}

// ListNotes returns every note.
// GET /api/notes
func (nc *NotesController) ListNotes(c *gin.Context) {
	list, err := nc.store.ListNotes()
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": list, "count": len(list)})
}

// GetNote returns the note of a verse.
// GET /api/suras/:id/ayas/:aya/note
func (nc *NotesController) GetNote(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	note, err := nc.store.GetNote(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "get note")
		return
	}
	if note == nil {
		respondNotFound(c, "note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// PutNote attaches or replaces the note of a verse.
// PUT /api/suras/:id/ayas/:aya/note
func (nc *NotesController) PutNote(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	note, err := nc.store.AddNote(suraID, ayaNumber, req.Content)
	if err != nil {
		if errors.Is(err, notes.ErrEmptyContent) {
			respondBadRequest(c, "note content is required")
			return
		}
		respondInternalError(c, err, "add note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote removes the note of a verse.
// DELETE /api/suras/:id/ayas/:aya/note
func (nc *NotesController) DeleteNote(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	deleted, err := nc.store.DeleteNote(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "delete note")
		return
	}
	if deleted == 0 {
		respondNotFound(c, "note")
		return
	}
	respondSuccess(c, "note deleted")
}
