package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/database/collections"
	"github.com/sunsiz/QuranApp/internal/entities"
)

type CollectionsController struct {
	store CollectionStore
}

func NewCollectionsController(store CollectionStore) *CollectionsController {
	return &CollectionsController{store: store}
}

type collectionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
	ColorCode    string `json:"colorCode"`
}

type collectionAyaRequest struct {
	AyaID int    `json:"ayaId"`
	Notes string `json:"notes"`
}

// ListCollections returns all bookmark collections in display order.
// GET /api/collections
func (cc *CollectionsController) ListCollections(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	list, err := cc.store.List(refresh)
	if err != nil {
		respondInternalError(c, err, "list collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": list, "count": len(list)})
}

// GetCollection returns a single collection with its verse count.
// GET /api/collections/:id
func (cc *CollectionsController) GetCollection(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	collection, err := cc.store.Get(id)
	if err != nil {
		respondInternalError(c, err, "get collection")
		return
	}
	if collection == nil {
		respondNotFound(c, "collection")
		return
	}
	count, err := cc.store.CountAyas(id)
	if err != nil {
		respondInternalError(c, err, "count collection ayas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection, "ayaCount": count})
}

// CreateCollection creates a new bookmark collection.
// POST /api/collections
func (cc *CollectionsController) CreateCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	collection := &entities.BookmarkCollection{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
		ColorCode:    req.ColorCode,
	}
	if _, err := cc.store.Create(collection); err != nil {
		switch {
		case errors.Is(err, collections.ErrEmptyName):
			respondBadRequest(c, "collection name is required")
		case errors.Is(err, collections.ErrDuplicateName):
			respondBadRequest(c, "a collection with this name already exists")
		default:
			respondInternalError(c, err, "create collection")
		}
		return
	}
	respondCreated(c, collection)
}

// UpdateCollection updates a collection's fields.
// PUT /api/collections/:id
func (cc *CollectionsController) UpdateCollection(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	existing, err := cc.store.Get(id)
	if err != nil {
		respondInternalError(c, err, "get collection")
		return
	}
	if existing == nil {
		respondNotFound(c, "collection")
		return
	}
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.DisplayOrder = req.DisplayOrder
	existing.ColorCode = req.ColorCode
	if _, err := cc.store.Update(existing); err != nil {
		respondInternalError(c, err, "update collection")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DeleteCollection removes a collection and its verse links.
// DELETE /api/collections/:id
func (cc *CollectionsController) DeleteCollection(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	deleted, err := cc.store.Delete(id)
	if err != nil {
		respondInternalError(c, err, "delete collection")
		return
	}
	if deleted == 0 {
		respondNotFound(c, "collection")
		return
	}
	respondSuccess(c, "collection deleted")
}

// CleanupDuplicates removes duplicate collections, keeping the oldest of
// each name.
// POST /api/admin/collections/cleanup
func (cc *CollectionsController) CleanupDuplicates(c *gin.Context) {
	removed, err := cc.store.RemoveDuplicates()
	if err != nil {
		respondInternalError(c, err, "cleanup duplicate collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ListCollectionAyas returns the verses in a collection.
// GET /api/collections/:id/ayas
func (cc *CollectionsController) ListCollectionAyas(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayas, err := cc.store.ListAyas(id)
	if err != nil {
		respondInternalError(c, err, "list collection ayas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ayas": ayas, "count": len(ayas)})
}

// AddAya links a verse into a collection. Adding a verse that is already
// present is not an error.
// POST /api/collections/:id/ayas
func (cc *CollectionsController) AddAya(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	var req collectionAyaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	added, err := cc.store.AddAya(req.AyaID, id, req.Notes)
	if err != nil {
		respondInternalError(c, err, "add aya to collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added > 0})
}

// RemoveAya unlinks a verse from a collection.
// DELETE /api/collections/:id/ayas/:ayaId
func (cc *CollectionsController) RemoveAya(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaID, ok := parseIntParam(c, "ayaId")
	if !ok {
		return
	}
	removed, err := cc.store.RemoveAya(ayaID, id)
	if err != nil {
		respondInternalError(c, err, "remove aya from collection")
		return
	}
	if removed == 0 {
		respondNotFound(c, "collection link")
		return
	}
	respondSuccess(c, "aya removed from collection")
}

// CollectionsForAya returns the collections a verse belongs to.
// GET /api/suras/:id/ayas/:aya/collections
func (cc *CollectionsController) CollectionsForAya(c *gin.Context) {
	suraID, ok := parseIntParam(c, "id")
	if !ok {
		return
	}
	ayaNumber, ok := parseIntParam(c, "aya")
	if !ok {
		return
	}
	list, err := cc.store.CollectionsForAya(suraID, ayaNumber)
	if err != nil {
		respondInternalError(c, err, "collections for aya")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": list, "count": len(list)})
}
