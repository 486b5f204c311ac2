// Package content provides read access to the bundled Quran text: suras,
// ayas, keyword search, and the sura-name cache.
//
// # Usage
//
//	repo := content.NewRepository(db, dbPath)
//	ayas, err := repo.ListAyas(2)
package content

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// Repository handles sura and aya database operations.
type Repository struct {
	db     *gorm.DB
	dbPath string

	nameMu    sync.RWMutex
	suraNames map[int]string
}

// NewRepository creates a new content repository. dbPath is needed for the
// search connection, which bypasses the shared gorm handle (see search.go).
func NewRepository(db *gorm.DB, dbPath string) *Repository {
	return &Repository{db: db, dbPath: dbPath}
}

// ListSuras returns all suras in canonical order.
func (r *Repository) ListSuras() ([]entities.Sura, error) {
	var suras []entities.Sura
	err := r.db.Order("Id ASC").Find(&suras).Error
	return suras, err
}

// GetSura returns a sura by id, or nil if it does not exist.
func (r *Repository) GetSura(suraID int) (*entities.Sura, error) {
	var sura entities.Sura
	err := r.db.Where("Id = ?", suraID).First(&sura).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sura, nil
}

// ListAyas returns all ayas of a sura ordered by verse number.
func (r *Repository) ListAyas(suraID int) ([]entities.Aya, error) {
	var ayas []entities.Aya
	err := r.db.Where("SuraId = ?", suraID).Order("AyaId ASC").Find(&ayas).Error
	return ayas, err
}

// GetAya looks a verse up by its natural key (sura id, verse number).
// Returns nil when absent; a missing verse is an expected lookup result,
// not an error.
func (r *Repository) GetAya(suraID, ayaNumber int) (*entities.Aya, error) {
	var aya entities.Aya
	err := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &aya, nil
}

// UpdateAya persists a full aya row by its internal id. Returns -1 when the
// aya reference is nil, otherwise the number of rows affected.
func (r *Repository) UpdateAya(aya *entities.Aya) (int, error) {
	if aya == nil {
		return -1, nil
	}
	result := r.db.Save(aya)
	if result.Error != nil {
		return 0, fmt.Errorf("update aya %d:%d: %w", aya.SuraID, aya.AyaID, result.Error)
	}
	return int(result.RowsAffected), nil
}

// SuraName returns the localized name of a sura from the in-memory cache,
// populating the cache from the database on first access. Sura metadata is
// static, so the cache is never invalidated during the process lifetime.
func (r *Repository) SuraName(suraID int) (string, error) {
	r.nameMu.RLock()
	if r.suraNames != nil {
		name := r.suraNames[suraID]
		r.nameMu.RUnlock()
		return name, nil
	}
	r.nameMu.RUnlock()

	r.nameMu.Lock()
	defer r.nameMu.Unlock()
	if r.suraNames == nil {
		var suras []entities.Sura
		if err := r.db.Find(&suras).Error; err != nil {
			return "", fmt.Errorf("load sura names: %w", err)
		}
		names := make(map[int]string, len(suras))
		for _, s := range suras {
			names[s.ID] = s.Name
		}
		r.suraNames = names
	}
	return r.suraNames[suraID], nil
}
