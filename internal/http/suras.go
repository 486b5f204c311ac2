package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SurasController struct {
	store ContentStore
}

func NewSurasController(store ContentStore) *SurasController {
	return &SurasController{store: store}
}

// ListSuras returns all suras.
// GET /api/suras
func (sc *SurasController) ListSuras(c *gin.Context) {
	suras, err := sc.store.ListSuras()
	if err != nil {
		respondInternalError(c, err, "list suras")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suras": suras, "count": len(suras)})
}

// GetSura returns a single sura.
// GET /api/suras/:id
func (sc *SurasController) GetSura(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	sura, err := sc.store.GetSura(id)
	if err != nil {
		respondInternalError(c, err, "get sura")
		return
	}
	if sura == nil {
		respondNotFound(c, "sura")
		return
	}
	c.JSON(http.StatusOK, sura)
}

// ListAyas returns the verses of a sura.
// GET /api/suras/:id/ayas
func (sc *SurasController) ListAyas(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayas, err := sc.store.ListAyas(id)
	if err != nil {
		respondInternalError(c, err, "list ayas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ayas": ayas, "count": len(ayas)})
}

// GetAya returns a single verse addressed by sura and verse number.
// GET /api/suras/:id/ayas/:aya
func (sc *SurasController) GetAya(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	aya, err := sc.store.GetAya(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "get aya")
		return
	}
	if aya == nil {
		respondNotFound(c, "aya")
		return
	}
	c.JSON(http.StatusOK, aya)
}
