package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/update"
)

type UpdateController struct {
	updater Updater
}

func NewUpdateController(updater Updater) *UpdateController {
	return &UpdateController{updater: updater}
}

// CheckUpdate fetches the update manifest and reports whether a newer
// translation database is published.
// GET /api/update/check
func (uc *UpdateController) CheckUpdate(c *gin.Context) {
	result, err := uc.updater.CheckForUpdate(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "check for update")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"updateAvailable": result.UpdateAvailable,
		"currentVersion":  result.CurrentVersion,
		"latestVersion":   result.Manifest.Version,
		"publishedDate":   result.Manifest.Date,
		"size":            result.Manifest.Size,
	})
}

// RunUpdate downloads and installs the latest translation database. The
// request blocks until the update completes; progress is logged.
// POST /api/update/run
func (uc *UpdateController) RunUpdate(c *gin.Context) {
	result, err := uc.updater.Update(c.Request.Context(), func(p update.Progress) {
		if p.Status == update.StatusDownloading && p.TotalBytes > 0 {
			log.Printf("Downloading translation database: %d/%d bytes", p.BytesDownloaded, p.TotalBytes)
		}
	})
	if err != nil {
		respondInternalError(c, err, "run update")
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"updated": false, "message": "already up to date"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"updated":     true,
		"ayasUpdated": result.Updated,
		"ayasSkipped": result.Skipped,
	})
}
