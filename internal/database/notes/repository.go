// Package notes provides database operations for per-verse user notes.
//
// A verse holds at most one note by convention: AddNote looks the note up
// first and updates it in place when one exists.
package notes

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// ErrEmptyContent is returned when a note is added with blank content.
var ErrEmptyContent = errors.New("note content is required")

// SuraNamer resolves sura ids to localized names, implemented by the content
// repository's name cache.
type SuraNamer interface {
	SuraName(suraID int) (string, error)
}

// Repository handles note database operations and keeps the owning aya's
// HasNote flag in sync.
type Repository struct {
	db    *gorm.DB
	namer SuraNamer
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB, namer SuraNamer) *Repository {
	return &Repository{db: db, namer: namer}
}

// GetNote returns the note for a verse, or nil if none exists.
func (r *Repository) GetNote(suraID, ayaNumber int) (*entities.Note, error) {
	var note entities.Note
	err := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).First(&note).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns every note in the database.
func (r *Repository) ListNotes() ([]entities.Note, error) {
	var notes []entities.Note
	err := r.db.Order("SuraId ASC, AyaId ASC").Find(&notes).Error
	return notes, err
}

// AddNote attaches a note to a verse. Blank content is rejected before any
// mutation. If the verse already has a note its content is updated in place.
// The aya's HasNote flag is set with a field-level update so a concurrent
// favourite toggle is never clobbered by a full-row rewrite.
func (r *Repository) AddNote(suraID, ayaNumber int, content string) (*entities.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	existing, err := r.GetNote(suraID, ayaNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Content = content
		if err := r.db.Save(existing).Error; err != nil {
			return nil, fmt.Errorf("update note %d:%d: %w", suraID, ayaNumber, err)
		}
		return existing, nil
	}

	suraName, err := r.namer.SuraName(suraID)
	if err != nil {
		return nil, err
	}
	note := &entities.Note{
		SuraID:  suraID,
		AyaID:   ayaNumber,
		Title:   fmt.Sprintf("%d. Сура %s, %d. Оят", suraID, suraName, ayaNumber),
		Content: content,
	}
	if err := r.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("create note %d:%d: %w", suraID, ayaNumber, err)
	}

	err = r.db.Model(&entities.Aya{}).
		Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).
		Update("HasNote", true).Error
	if err != nil {
		return nil, fmt.Errorf("flag aya %d:%d: %w", suraID, ayaNumber, err)
	}
	return note, nil
}

// UpdateNote persists a full note row. Returns -1 when the reference is nil.
func (r *Repository) UpdateNote(note *entities.Note) (int, error) {
	if note == nil {
		return -1, nil
	}
	result := r.db.Save(note)
	return int(result.RowsAffected), result.Error
}

// DeleteNote removes a verse's note. The aya's HasNote flag is cleared only
// when a note row was actually deleted.
func (r *Repository) DeleteNote(suraID, ayaNumber int) (int, error) {
	result := r.db.Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).Delete(&entities.Note{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, nil
	}
	err := r.db.Model(&entities.Aya{}).
		Where("SuraId = ? AND AyaId = ?", suraID, ayaNumber).
		Update("HasNote", false).Error
	if err != nil {
		return int(result.RowsAffected), fmt.Errorf("unflag aya %d:%d: %w", suraID, ayaNumber, err)
	}
	return int(result.RowsAffected), nil
}
