package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsiz/QuranApp/internal/database"
	"github.com/sunsiz/QuranApp/internal/database/content"
	"github.com/sunsiz/QuranApp/internal/database/favourites"
	"github.com/sunsiz/QuranApp/internal/entities"
)

func setupFavouritesTest(t *testing.T) (*favourites.Repository, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_favourites_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db := database.New(dbPath, "")
	require.NoError(t, db.EnsureInitialized())

	gormDB, err := db.DB()
	require.NoError(t, err)

	suras := []entities.Sura{{ID: 1, Name: "Фотиҳа", AyaCount: 7}}
	require.NoError(t, gormDB.Create(&suras).Error)
	ayas := []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
	}
	require.NoError(t, gormDB.Create(&ayas).Error)

	repo := favourites.NewRepository(gormDB, content.NewRepository(gormDB, dbPath))

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func TestFavouritesController_ToggleFavourite(t *testing.T) {
	t.Run("marks verse as favourite", func(t *testing.T) {
		repo, cleanup := setupFavouritesTest(t)
		defer cleanup()

		controller := NewFavouritesController(repo)
		router := gin.New()
		router.POST("/api/suras/:id/ayas/:aya/favourite", controller.ToggleFavourite)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/suras/1/ayas/1/favourite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["isFavorite"])

		summaries, err := repo.List()
		require.NoError(t, err)
		require.Len(t, summaries, 1)
	})

	t.Run("returns error for invalid sura id", func(t *testing.T) {
		repo, cleanup := setupFavouritesTest(t)
		defer cleanup()

		controller := NewFavouritesController(repo)
		router := gin.New()
		router.POST("/api/suras/:id/ayas/:aya/favourite", controller.ToggleFavourite)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/suras/abc/ayas/1/favourite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFavouritesController_RemoveFavourite(t *testing.T) {
	t.Run("clears favourite flag", func(t *testing.T) {
		repo, cleanup := setupFavouritesTest(t)
		defer cleanup()

		_, err := repo.SetFavourite(1, 1, true)
		require.NoError(t, err)

		controller := NewFavouritesController(repo)
		router := gin.New()
		router.DELETE("/api/suras/:id/ayas/:aya/favourite", controller.RemoveFavourite)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/suras/1/ayas/1/favourite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns 404 for unknown verse", func(t *testing.T) {
		repo, cleanup := setupFavouritesTest(t)
		defer cleanup()

		controller := NewFavouritesController(repo)
		router := gin.New()
		router.DELETE("/api/suras/:id/ayas/:aya/favourite", controller.RemoveFavourite)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/suras/99/ayas/1/favourite", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFavouritesController_ListFavourites(t *testing.T) {
	repo, cleanup := setupFavouritesTest(t)
	defer cleanup()

	_, err := repo.SetFavourite(1, 1, true)
	require.NoError(t, err)
	_, err = repo.SetFavourite(1, 2, true)
	require.NoError(t, err)

	controller := NewFavouritesController(repo)
	router := gin.New()
	router.GET("/api/favourites", controller.ListFavourites)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/favourites", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Favourites []entities.AyaSummary `json:"favourites"`
		Count      int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Favourites, 2)
	assert.Equal(t, "Фотиҳа", body.Favourites[0].SuraName)
}
