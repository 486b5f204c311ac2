package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/prefs"
)

type SearchController struct {
	store ContentStore
	prefs *prefs.Store
}

func NewSearchController(store ContentStore, prefs *prefs.Store) *SearchController {
	return &SearchController{store: store, prefs: prefs}
}

// Search looks the keyword up in translation text and commentary. A hit
// records the keyword in the search history.
// GET /api/search?q=keyword
func (sc *SearchController) Search(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		respondBadRequest(c, "q is required")
		return
	}

	results, err := sc.store.Search(keyword)
	if err != nil {
		respondInternalError(c, err, "search")
		return
	}
	if sc.prefs != nil && len(results) > 0 {
		if err := sc.prefs.AddSearch(keyword); err != nil {
			respondInternalError(c, err, "record search history")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// History returns the recent search keywords, newest first.
// GET /api/search/history
func (sc *SearchController) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": sc.prefs.SearchHistory()})
}

// DeleteHistoryItem removes one keyword from the history.
// DELETE /api/search/history?q=keyword
func (sc *SearchController) DeleteHistoryItem(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		respondBadRequest(c, "q is required")
		return
	}
	if err := sc.prefs.RemoveSearch(keyword); err != nil {
		respondInternalError(c, err, "remove search history item")
		return
	}
	respondSuccess(c, "removed")
}

// ClearHistory empties the search history.
// DELETE /api/search/history/all
func (sc *SearchController) ClearHistory(c *gin.Context) {
	if err := sc.prefs.ClearSearchHistory(); err != nil {
		respondInternalError(c, err, "clear search history")
		return
	}
	respondSuccess(c, "cleared")
}
