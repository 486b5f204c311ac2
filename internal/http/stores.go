package http

import (
	"context"

	"github.com/sunsiz/QuranApp/internal/entities"
	"github.com/sunsiz/QuranApp/internal/export"
	"github.com/sunsiz/QuranApp/internal/update"
)

// Store interfaces declared by the consumer side so controllers depend only
// on the operations they actually call. The database repositories satisfy
// them without any adapter code.

// ContentStore defines read operations on the Quran text.
type ContentStore interface {
	ListSuras() ([]entities.Sura, error)
	GetSura(suraID int) (*entities.Sura, error)
	ListAyas(suraID int) ([]entities.Aya, error)
	GetAya(suraID, ayaNumber int) (*entities.Aya, error)
	Search(keyword string) ([]entities.Aya, error)
}

// NoteStore defines database operations for per-verse notes.
type NoteStore interface {
	GetNote(suraID, ayaNumber int) (*entities.Note, error)
	ListNotes() ([]entities.Note, error)
	AddNote(suraID, ayaNumber int, content string) (*entities.Note, error)
	DeleteNote(suraID, ayaNumber int) (int, error)
}

// FavouriteStore defines database operations for the favourite flag.
type FavouriteStore interface {
	SetFavourite(suraID, ayaNumber int, favourite bool) (int, error)
	Toggle(suraID, ayaNumber int) (bool, error)
	List() ([]entities.AyaSummary, error)
	Count() (int64, error)
}

// CollectionStore defines database operations for bookmark collections.
type CollectionStore interface {
	List(forceRefresh bool) ([]entities.BookmarkCollection, error)
	Get(collectionID int) (*entities.BookmarkCollection, error)
	Create(collection *entities.BookmarkCollection) (int, error)
	Update(collection *entities.BookmarkCollection) (int, error)
	Delete(collectionID int) (int, error)
	RemoveDuplicates() (int, error)
	AddAya(ayaID, collectionID int, notes string) (int, error)
	RemoveAya(ayaID, collectionID int) (int, error)
	ListAyas(collectionID int) ([]entities.AyaSummary, error)
	CollectionsForAya(suraID, ayaNumber int) ([]entities.BookmarkCollection, error)
	CountAyas(collectionID int) (int64, error)
}

// ProgressStore defines database operations for reading progress.
type ProgressStore interface {
	List() ([]entities.ReadingProgress, error)
	GetOrCreate(suraID int) (*entities.ReadingProgress, error)
	MarkAyaRead(suraID, ayaNumber int) (int, error)
	ReadStatuses(suraID int) ([]entities.AyaReadStatus, error)
	Reset(suraID int) (int, error)
	Statistics() entities.ReadingStatistics
}

// Exporter serializes and restores user data.
type Exporter interface {
	ExportToJSON() ([]byte, error)
	ImportFromJSON(payload []byte) (*export.ImportResult, error)
}

// Updater drives translation database updates.
type Updater interface {
	CheckForUpdate(ctx context.Context) (*update.CheckResult, error)
	Update(ctx context.Context, progress update.ProgressFunc) (*update.MergeResult, error)
}
