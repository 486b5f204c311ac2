package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavouritesController struct {
	store FavouriteStore
}

func NewFavouritesController(store FavouriteStore) *FavouritesController {
	return &FavouritesController{store: store}
}

// ListFavourites returns all favourite verses with their sura names.
// GET /api/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	favourites, err := fc.store.List()
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favourites": favourites, "count": len(favourites)})
}

// GetFavouriteCount returns the number of favourite verses.
// GET /api/favourites/count
func (fc *FavouritesController) GetFavouriteCount(c *gin.Context) {
	count, err := fc.store.Count()
	if err != nil {
		respondInternalError(c, err, "count favourites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ToggleFavourite flips the favourite flag of a verse.
// POST /api/suras/:id/ayas/:aya/favourite
func (fc *FavouritesController) ToggleFavourite(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	favourite, err := fc.store.Toggle(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "toggle favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suraId": suraID, "ayaId": ayaNumber, "isFavorite": favourite})
}

// RemoveFavourite clears the favourite flag of a verse.
// DELETE /api/suras/:id/ayas/:aya/favourite
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	rows, err := fc.store.SetFavourite(suraID, ayaNumber, false)
	if err != nil {
		respondInternalError(c, err, "remove favourite")
		return
	}
	if rows == 0 {
		respondNotFound(c, "aya")
		return
	}
	respondSuccess(c, "favourite removed")
}
