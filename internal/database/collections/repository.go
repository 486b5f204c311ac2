// Package collections provides database operations for bookmark collections:
// named verse sets with display ordering, an in-memory list cache, and
// many-to-many links to ayas.
package collections

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
	"github.com/sunsiz/QuranApp/internal/utils"
)

var (
	// ErrEmptyName is returned when a collection is created or renamed with
	// a blank name.
	ErrEmptyName = errors.New("collection name is required")
	// ErrDuplicateName is returned when a collection with the exact trimmed
	// name already exists.
	ErrDuplicateName = errors.New("collection with this name already exists")
)

// SuraNamer resolves sura ids to localized names, implemented by the content
// repository's name cache.
type SuraNamer interface {
	SuraName(suraID int) (string, error)
}

// Repository handles bookmark collection database operations. The collection
// list is cached in memory behind its own lock, separate from the sura-name
// cache, and invalidated on every collection mutation.
type Repository struct {
	db    *gorm.DB
	namer SuraNamer

	cacheMu sync.Mutex
	cache   []entities.BookmarkCollection // nil means not populated
}

// NewRepository creates a new collections repository.
func NewRepository(db *gorm.DB, namer SuraNamer) *Repository {
	return &Repository{db: db, namer: namer}
}

// List returns all collections ordered by display order. The result comes
// from the cache, populated on first call or reloaded when forceRefresh is
// set; callers always receive their own copy, never the cached slice.
func (r *Repository) List(forceRefresh bool) ([]entities.BookmarkCollection, error) {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	if r.cache == nil || forceRefresh {
		var collections []entities.BookmarkCollection
		err := r.db.Order("DisplayOrder ASC, Id ASC").Find(&collections).Error
		if err != nil {
			return nil, fmt.Errorf("load collections: %w", err)
		}
		r.cache = collections
	}

	snapshot := make([]entities.BookmarkCollection, len(r.cache))
	copy(snapshot, r.cache)
	return snapshot, nil
}

func (r *Repository) invalidateCache() {
	r.cacheMu.Lock()
	r.cache = nil
	r.cacheMu.Unlock()
}

// Get returns a collection by id, or nil if it does not exist.
func (r *Repository) Get(collectionID int) (*entities.BookmarkCollection, error) {
	var collection entities.BookmarkCollection
	err := r.db.Where("Id = ?", collectionID).First(&collection).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// FindByName returns the collection with the exact name, or nil.
func (r *Repository) FindByName(name string) (*entities.BookmarkCollection, error) {
	var collection entities.BookmarkCollection
	err := r.db.Where("Name = ?", name).First(&collection).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// Create validates and inserts a new collection. Names are trimmed, blank
// names rejected, and an exact-name duplicate (case-sensitive on the trimmed
// name) is refused. A zero display order is treated as unspecified and
// assigned max+1. Returns -1 when the reference is nil.
func (r *Repository) Create(collection *entities.BookmarkCollection) (int, error) {
	if collection == nil {
		return -1, nil
	}

	collection.Name = strings.TrimSpace(collection.Name)
	collection.Description = strings.TrimSpace(collection.Description)
	if collection.Name == "" {
		return 0, ErrEmptyName
	}
	collection.ColorCode = utils.CollectionColor(collection.ColorCode)

	existing, err := r.FindByName(collection.Name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateName
	}

	if collection.DisplayOrder == 0 {
		var maxOrder int
		row := r.db.Model(&entities.BookmarkCollection{}).
			Select("COALESCE(MAX(DisplayOrder), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return 0, fmt.Errorf("compute display order: %w", err)
		}
		collection.DisplayOrder = maxOrder + 1
	}
	collection.CreatedDate = time.Now()

	if err := r.db.Create(collection).Error; err != nil {
		return 0, fmt.Errorf("create collection %q: %w", collection.Name, err)
	}
	r.invalidateCache()
	return 1, nil
}

// Seed inserts a collection verbatim, keeping an explicit zero display order
// and skipping the duplicate check. Used by the migration coordinator, which
// performs its own name lookups first.
func (r *Repository) Seed(collection *entities.BookmarkCollection) error {
	if collection.CreatedDate.IsZero() {
		collection.CreatedDate = time.Now()
	}
	if err := r.db.Create(collection).Error; err != nil {
		return fmt.Errorf("seed collection %q: %w", collection.Name, err)
	}
	r.invalidateCache()
	return nil
}

// Update persists a full collection row. Returns -1 when the reference is nil.
func (r *Repository) Update(collection *entities.BookmarkCollection) (int, error) {
	if collection == nil {
		return -1, nil
	}
	collection.Name = strings.TrimSpace(collection.Name)
	if collection.Name == "" {
		return 0, ErrEmptyName
	}
	collection.ColorCode = utils.CollectionColor(collection.ColorCode)
	result := r.db.Save(collection)
	if result.Error != nil {
		return 0, result.Error
	}
	r.invalidateCache()
	return int(result.RowsAffected), nil
}

// Delete removes a collection, cascading deletion of its verse links first.
func (r *Repository) Delete(collectionID int) (int, error) {
	err := r.db.Where("CollectionId = ?", collectionID).
		Delete(&entities.AyaBookmarkCollection{}).Error
	if err != nil {
		return 0, fmt.Errorf("delete collection links: %w", err)
	}
	result := r.db.Where("Id = ?", collectionID).Delete(&entities.BookmarkCollection{})
	if result.Error != nil {
		return 0, result.Error
	}
	r.invalidateCache()
	return int(result.RowsAffected), nil
}

// RemoveDuplicates groups collections by case-insensitive name, keeps the
// earliest-created member of each group, and deletes the rest along with
// their links. Returns the number of collections removed.
func (r *Repository) RemoveDuplicates() (int, error) {
	var collections []entities.BookmarkCollection
	if err := r.db.Find(&collections).Error; err != nil {
		return 0, err
	}

	keep := make(map[string]entities.BookmarkCollection)
	for _, c := range collections {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		best, ok := keep[key]
		if !ok || c.CreatedDate.Before(best.CreatedDate) {
			keep[key] = c
		}
	}

	removed := 0
	for _, c := range collections {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if keep[key].ID == c.ID {
			continue
		}
		if _, err := r.Delete(c.ID); err != nil {
			return removed, fmt.Errorf("remove duplicate %q: %w", c.Name, err)
		}
		removed++
	}
	return removed, nil
}

// AddAya links a verse (by internal id) into a collection. Adding an already
// linked verse is a no-op returning 0, so the operation is idempotent.
func (r *Repository) AddAya(ayaID, collectionID int, notes string) (int, error) {
	var existing entities.AyaBookmarkCollection
	err := r.db.Where("AyaId = ? AND CollectionId = ?", ayaID, collectionID).First(&existing).Error
	if err == nil {
		return 0, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	link := entities.AyaBookmarkCollection{
		AyaID:        ayaID,
		CollectionID: collectionID,
		AddedDate:    time.Now(),
		Notes:        notes,
	}
	if err := r.db.Create(&link).Error; err != nil {
		return 0, fmt.Errorf("link aya %d to collection %d: %w", ayaID, collectionID, err)
	}
	return 1, nil
}

// RemoveAya unlinks a verse from a collection.
func (r *Repository) RemoveAya(ayaID, collectionID int) (int, error) {
	result := r.db.Where("AyaId = ? AND CollectionId = ?", ayaID, collectionID).
		Delete(&entities.AyaBookmarkCollection{})
	return int(result.RowsAffected), result.Error
}

// ListAyas returns the verses linked into a collection, joined with their
// sura names.
func (r *Repository) ListAyas(collectionID int) ([]entities.AyaSummary, error) {
	var links []entities.AyaBookmarkCollection
	err := r.db.Where("CollectionId = ?", collectionID).Order("AddedDate ASC").Find(&links).Error
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []entities.AyaSummary{}, nil
	}

	ayaIDs := make([]int, len(links))
	for i, link := range links {
		ayaIDs[i] = link.AyaID
	}
	var ayas []entities.Aya
	if err := r.db.Where("Id IN ?", ayaIDs).Find(&ayas).Error; err != nil {
		return nil, err
	}

	summaries := make([]entities.AyaSummary, 0, len(ayas))
	for _, aya := range ayas {
		name, err := r.namer.SuraName(aya.SuraID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, entities.AyaSummary{
			SuraID:   aya.SuraID,
			AyaID:    aya.AyaID,
			SuraName: name,
			Text:     aya.Text,
		})
	}
	return summaries, nil
}

// CollectionsForAya returns every collection containing the verse addressed
// by its natural key, ordered by display order. A missing verse yields an
// empty result.
func (r *Repository) CollectionsForAya(suraID, ayaNumber int) ([]entities.BookmarkCollection, error) {
	var aya entities.Aya
	err := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error
	if err == gorm.ErrRecordNotFound {
		return []entities.BookmarkCollection{}, nil
	}
	if err != nil {
		return nil, err
	}

	var links []entities.AyaBookmarkCollection
	if err := r.db.Where("AyaId = ?", aya.ID).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []entities.BookmarkCollection{}, nil
	}

	collectionIDs := make([]int, len(links))
	for i, link := range links {
		collectionIDs[i] = link.CollectionID
	}
	var collections []entities.BookmarkCollection
	err = r.db.Where("Id IN ?", collectionIDs).Order("DisplayOrder ASC, Id ASC").Find(&collections).Error
	return collections, err
}

// CountAyas returns the number of verses linked into a collection.
func (r *Repository) CountAyas(collectionID int) (int64, error) {
	var count int64
	err := r.db.Model(&entities.AyaBookmarkCollection{}).
		Where("CollectionId = ?", collectionID).Count(&count).Error
	return count, err
}
