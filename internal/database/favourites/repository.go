// Package favourites provides database operations for the per-verse
// favourite flag.
package favourites

import (
	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// SuraNamer resolves sura ids to localized names, implemented by the content
// repository's name cache.
type SuraNamer interface {
	SuraName(suraID int) (string, error)
}

// Repository handles favourite-flag database operations.
type Repository struct {
	db    *gorm.DB
	namer SuraNamer
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB, namer SuraNamer) *Repository {
	return &Repository{db: db, namer: namer}
}

// SetFavourite updates the favourite flag of a verse addressed by its
// natural key. Returns 0 when the verse does not exist. The flag is written
// with a field-level update so note attachment cannot be clobbered.
func (r *Repository) SetFavourite(suraID, ayaNumber int, favourite bool) (int, error) {
	result := r.db.Model(&entities.Aya{}).
		Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).
		Update("IsFavorite", favourite)
	return int(result.RowsAffected), result.Error
}

// IsFavourite reports the current favourite flag of a verse. Returns false
// with no error when the verse does not exist.
func (r *Repository) IsFavourite(suraID, ayaNumber int) (bool, error) {
	var aya entities.Aya
	err := r.db.Select("IsFavorite").
		Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return aya.IsFavorite, nil
}

// Toggle flips the favourite flag of a verse and returns the new state.
// Returns false with no error when the verse does not exist.
func (r *Repository) Toggle(suraID, ayaNumber int) (bool, error) {
	var aya entities.Aya
	err := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&aya).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := r.SetFavourite(suraID, ayaNumber, !aya.IsFavorite); err != nil {
		return aya.IsFavorite, err
	}
	return !aya.IsFavorite, nil
}

// ListFavouriteAyas returns the full rows of all favourite verses. The
// migration coordinator needs the internal ids for collection links.
func (r *Repository) ListFavouriteAyas() ([]entities.Aya, error) {
	var ayas []entities.Aya
	err := r.db.Where("IsFavorite = ?", true).Order("SuraId ASC, AyaId ASC").Find(&ayas).Error
	return ayas, err
}

// List returns all favourite verses joined with their sura names.
func (r *Repository) List() ([]entities.AyaSummary, error) {
	ayas, err := r.ListFavouriteAyas()
	if err != nil {
		return nil, err
	}
	favourites := make([]entities.AyaSummary, 0, len(ayas))
	for _, aya := range ayas {
		name, err := r.namer.SuraName(aya.SuraID)
		if err != nil {
			return nil, err
		}
		favourites = append(favourites, entities.AyaSummary{
			SuraID:   aya.SuraID,
			AyaID:    aya.AyaID,
			SuraName: name,
			Text:     aya.Text,
		})
	}
	return favourites, nil
}

// Count returns the number of favourite verses.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Aya{}).Where("IsFavorite = ?", true).Count(&count).Error
	return count, err
}
