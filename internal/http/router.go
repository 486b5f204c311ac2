package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	suras := NewSurasController(cfg.Content)
	router.GET("/api/suras", suras.ListSuras)
	router.GET("/api/suras/:id", suras.GetSura)
	router.GET("/api/suras/:id/ayas", suras.ListAyas)
	router.GET("/api/suras/:id/ayas/:aya", suras.GetAya)

	search := NewSearchController(cfg.Content, cfg.Prefs)
	router.GET("/api/search", search.Search)
	if cfg.Prefs != nil {
		router.GET("/api/search/history", search.History)
		router.DELETE("/api/search/history", search.DeleteHistoryItem)
		router.DELETE("/api/search/history/all", search.ClearHistory)
	}

	if cfg.Notes != nil {
		notes := NewNotesController(cfg.Notes)
		router.GET("/api/notes", notes.ListNotes)
		router.GET("/api/suras/:id/ayas/:aya/note", notes.GetNote)
		router.PUT("/api/suras/:id/ayas/:aya/note", notes.PutNote)
		router.DELETE("/api/suras/:id/ayas/:aya/note", notes.DeleteNote)
	}

	if cfg.Favourites != nil {
		favourites := NewFavouritesController(cfg.Favourites)
		router.GET("/api/favourites", favourites.ListFavourites)
		router.GET("/api/favourites/count", favourites.GetFavouriteCount)
		router.POST("/api/suras/:id/ayas/:aya/favourite", favourites.ToggleFavourite)
		router.DELETE("/api/suras/:id/ayas/:aya/favourite", favourites.RemoveFavourite)
	}

	if cfg.Collections != nil {
		collections := NewCollectionsController(cfg.Collections)
		router.GET("/api/collections", collections.ListCollections)
		router.POST("/api/collections", collections.CreateCollection)
		router.GET("/api/collections/:id", collections.GetCollection)
		router.PUT("/api/collections/:id", collections.UpdateCollection)
		router.DELETE("/api/collections/:id", collections.DeleteCollection)
		router.GET("/api/collections/:id/ayas", collections.ListCollectionAyas)
		router.POST("/api/collections/:id/ayas", collections.AddAya)
		router.DELETE("/api/collections/:id/ayas/:ayaId", collections.RemoveAya)
		router.GET("/api/suras/:id/ayas/:aya/collections", collections.CollectionsForAya)
		router.POST("/api/admin/collections/cleanup", collections.CleanupDuplicates)
	}

	if cfg.Progress != nil {
		progress := NewProgressController(cfg.Progress)
		router.GET("/api/progress", progress.ListProgress)
		router.GET("/api/progress/stats", progress.Statistics)
		router.GET("/api/progress/:id", progress.GetProgress)
		router.DELETE("/api/progress/:id", progress.ResetProgress)
		router.GET("/api/progress/:id/ayas", progress.ReadStatuses)
		router.POST("/api/progress/:id/ayas/:aya/read", progress.MarkRead)
	}

	if cfg.Prefs != nil {
		settings := NewSettingsController(cfg.Prefs)
		router.GET("/api/settings", settings.GetSettings)
		router.PATCH("/api/settings", settings.UpdateSettings)
	}

	if cfg.Exporter != nil {
		exporter := NewExportController(cfg.Exporter)
		router.GET("/api/export", exporter.Export)
		router.POST("/api/import", exporter.Import)
	}

	if cfg.Updater != nil {
		updater := NewUpdateController(cfg.Updater)
		router.GET("/api/update/check", updater.CheckUpdate)
		router.POST("/api/update/run", updater.RunUpdate)
	}

	return router
}
