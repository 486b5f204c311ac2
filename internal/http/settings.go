package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/prefs"
)

type SettingsController struct {
	prefs *prefs.Store
}

func NewSettingsController(prefs *prefs.Store) *SettingsController {
	return &SettingsController{prefs: prefs}
}

type settingsResponse struct {
	Bookmark          string `json:"bookmark"`
	Script            string `json:"script"`
	Theme             string `json:"theme"`
	ArabicFontSize    int    `json:"arabicFontSize"`
	TranslateFontSize int    `json:"translateFontSize"`
	CommentFontSize   int    `json:"commentFontSize"`
	DatabaseVersion   string `json:"databaseVersion"`
	LastUpdateCheck   string `json:"lastUpdateCheck,omitempty"`
}

type settingsRequest struct {
	Bookmark          *string `json:"bookmark"`
	Script            *string `json:"script"`
	Theme             *string `json:"theme"`
	ArabicFontSize    *int    `json:"arabicFontSize"`
	TranslateFontSize *int    `json:"translateFontSize"`
	CommentFontSize   *int    `json:"commentFontSize"`
}

// GetSettings returns the current reading preferences.
// GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	resp := settingsResponse{
		Bookmark:          sc.prefs.Bookmark(),
		Script:            sc.prefs.Script(),
		Theme:             sc.prefs.Theme(),
		ArabicFontSize:    sc.prefs.ArabicFontSize(),
		TranslateFontSize: sc.prefs.TranslateFontSize(),
		CommentFontSize:   sc.prefs.CommentFontSize(),
		DatabaseVersion:   sc.prefs.DatabaseVersion(),
	}
	if t := sc.prefs.LastUpdateCheck(); !t.IsZero() {
		resp.LastUpdateCheck = t.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSettings applies the fields present in the request. Font sizes
// outside their allowed ranges are ignored without error, matching the
// setter semantics.
// PATCH /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.Bookmark != nil {
		if err := sc.prefs.SetBookmark(*req.Bookmark); err != nil {
			respondInternalError(c, err, "set bookmark")
			return
		}
	}
	if req.Script != nil {
		if err := sc.prefs.SetScript(*req.Script); err != nil {
			respondInternalError(c, err, "set script")
			return
		}
	}
	if req.Theme != nil {
		if err := sc.prefs.SetTheme(*req.Theme); err != nil {
			respondInternalError(c, err, "set theme")
			return
		}
	}
	if req.ArabicFontSize != nil {
		if err := sc.prefs.SetArabicFontSize(*req.ArabicFontSize); err != nil {
			respondInternalError(c, err, "set arabic font size")
			return
		}
	}
	if req.TranslateFontSize != nil {
		if err := sc.prefs.SetTranslateFontSize(*req.TranslateFontSize); err != nil {
			respondInternalError(c, err, "set translate font size")
			return
		}
	}
	if req.CommentFontSize != nil {
		if err := sc.prefs.SetCommentFontSize(*req.CommentFontSize); err != nil {
			respondInternalError(c, err, "set comment font size")
			return
		}
	}
	sc.GetSettings(c)
}
