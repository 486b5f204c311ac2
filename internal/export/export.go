// Package export serializes user data (notes and favourites) to JSON and
// restores it, so users can move their annotations between devices or keep
// a backup outside the app.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// maxImportSize caps the accepted payload before any parsing happens. A
// legitimate export of every verse annotated stays well under this.
const maxImportSize = 512000

// ErrTooLarge is returned when an import payload exceeds maxImportSize.
var ErrTooLarge = errors.New("import data exceeds maximum allowed size")

// NoteStore is the subset of the notes repository the service needs.
type NoteStore interface {
	ListNotes() ([]entities.Note, error)
	AddNote(suraID, ayaNumber int, content string) (*entities.Note, error)
}

// FavouriteStore is the subset of the favourites repository the service
// needs.
type FavouriteStore interface {
	List() ([]entities.AyaSummary, error)
	IsFavourite(suraID, ayaNumber int) (bool, error)
	SetFavourite(suraID, ayaNumber int, favourite bool) (int, error)
}

// NoteExport is a note as it appears in an export document.
type NoteExport struct {
	SuraID  int    `json:"suraId"`
	AyaID   int    `json:"ayaId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FavoriteExport is a favourite verse in an export document. SuraName and
// Text make the backup readable on its own; import keys on the natural key
// and ignores them.
type FavoriteExport struct {
	SuraID   int    `json:"suraId"`
	AyaID    int    `json:"ayaId"`
	SuraName string `json:"suraName"`
	Text     string `json:"text"`
}

// ExportData is the top-level export document.
type ExportData struct {
	Notes      []NoteExport     `json:"notes"`
	Favorites  []FavoriteExport `json:"favorites"`
	ExportDate string           `json:"exportDate"`
	AppVersion string           `json:"appVersion"`
}

// ImportResult summarizes what an import applied.
type ImportResult struct {
	NotesImported     int
	FavoritesImported int
}

// Service exports and imports user data.
type Service struct {
	notes      NoteStore
	favourites FavouriteStore
	appVersion string
}

// NewService creates an export service. appVersion is stamped into export
// documents.
func NewService(notes NoteStore, favourites FavouriteStore, appVersion string) *Service {
	return &Service{notes: notes, favourites: favourites, appVersion: appVersion}
}

// ExportToJSON collects all notes and favourites into a JSON document.
func (s *Service) ExportToJSON() ([]byte, error) {
	notes, err := s.notes.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	favourites, err := s.favourites.List()
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}

	data := ExportData{
		Notes:      make([]NoteExport, 0, len(notes)),
		Favorites:  make([]FavoriteExport, 0, len(favourites)),
		ExportDate: time.Now().Format(time.RFC3339),
		AppVersion: s.appVersion,
	}
	for _, note := range notes {
		data.Notes = append(data.Notes, NoteExport{
			SuraID:  note.SuraID,
			AyaID:   note.AyaID,
			Title:   note.Title,
			Content: note.Content,
		})
	}
	for _, fav := range favourites {
		data.Favorites = append(data.Favorites, FavoriteExport{
			SuraID:   fav.SuraID,
			AyaID:    fav.AyaID,
			SuraName: fav.SuraName,
			Text:     fav.Text,
		})
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportFromJSON restores notes and favourites from an export document.
// Notes are merged into existing annotations (a verse that already has a
// note gets its content replaced), favourites are only set on verses that
// exist locally and only counted when the flag was newly set. Individual
// item failures are logged and skipped so one bad
// entry does not abort the rest of the import.
func (s *Service) ImportFromJSON(payload []byte) (*ImportResult, error) {
	if len(payload) > maxImportSize {
		return nil, ErrTooLarge
	}

	var data ExportData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("parse import data: %w", err)
	}

	result := &ImportResult{}
	for _, note := range data.Notes {
		if _, err := s.notes.AddNote(note.SuraID, note.AyaID, note.Content); err != nil {
			log.Printf("Skipping note %d:%d on import: %v", note.SuraID, note.AyaID, err)
			continue
		}
		result.NotesImported++
	}
	for _, fav := range data.Favorites {
		already, err := s.favourites.IsFavourite(fav.SuraID, fav.AyaID)
		if err != nil {
			log.Printf("Skipping favourite %d:%d on import: %v", fav.SuraID, fav.AyaID, err)
			continue
		}
		if already {
			continue
		}
		rows, err := s.favourites.SetFavourite(fav.SuraID, fav.AyaID, true)
		if err != nil {
			log.Printf("Skipping favourite %d:%d on import: %v", fav.SuraID, fav.AyaID, err)
			continue
		}
		if rows == 0 {
			log.Printf("Skipping favourite %d:%d, verse not found", fav.SuraID, fav.AyaID)
			continue
		}
		result.FavoritesImported++
	}
	return result, nil
}
