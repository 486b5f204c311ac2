package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/export"
)

type ExportController struct {
	service Exporter
}

func NewExportController(service Exporter) *ExportController {
	return &ExportController{service: service}
}

// Export returns all user data as a downloadable JSON document.
// GET /api/export
func (ec *ExportController) Export(c *gin.Context) {
	payload, err := ec.service.ExportToJSON()
	if err != nil {
		respondInternalError(c, err, "export user data")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="quran-backup.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// Import restores user data from a previously exported JSON document.
// POST /api/import
func (ec *ExportController) Import(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}
	result, err := ec.service.ImportFromJSON(payload)
	if err != nil {
		if errors.Is(err, export.ErrTooLarge) {
			respondBadRequest(c, "import data exceeds maximum allowed size")
			return
		}
		respondBadRequest(c, "invalid import data")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notesImported":     result.NotesImported,
		"favoritesImported": result.FavoritesImported,
	})
}
