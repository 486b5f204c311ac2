package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	store ProgressStore
}

func NewProgressController(store ProgressStore) *ProgressController {
	return &ProgressController{store: store}
}

// ListProgress returns per-sura reading progress, most recently read first.
// GET /api/progress
func (pc *ProgressController) ListProgress(c *gin.Context) {
	list, err := pc.store.List()
	if err != nil {
		respondInternalError(c, err, "list progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": list, "count": len(list)})
}

// GetProgress returns the progress row for one sura, creating it on first
// access.
// GET /api/progress/:id
func (pc *ProgressController) GetProgress(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	progress, err := pc.store.GetOrCreate(suraID)
	if err != nil {
		respondInternalError(c, err, "get progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// MarkRead marks a verse as read and recomputes the sura's counters.
// POST /api/progress/:id/ayas/:aya/read
func (pc *ProgressController) MarkRead(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	rows, err := pc.store.MarkAyaRead(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "mark aya read")
		return
	}
	if rows == 0 {
		respondNotFound(c, "aya")
		return
	}
	respondSuccess(c, "aya marked as read")
}

// ReadStatuses returns the per-verse read markers of a sura.
// GET /api/progress/:id/ayas
func (pc *ProgressController) ReadStatuses(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	statuses, err := pc.store.ReadStatuses(suraID)
	if err != nil {
		respondInternalError(c, err, "read statuses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses, "count": len(statuses)})
}

// ResetProgress clears all reading progress for a sura.
// DELETE /api/progress/:id
func (pc *ProgressController) ResetProgress(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	if _, err := pc.store.Reset(suraID); err != nil {
		respondInternalError(c, err, "reset progress")
		return
	}
	respondSuccess(c, "progress reset")
}

// Statistics returns overall reading statistics.
// GET /api/progress/stats
func (pc *ProgressController) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, pc.store.Statistics())
}
