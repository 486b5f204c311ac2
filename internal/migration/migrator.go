// Package migration performs the one-time transition from the legacy
// per-verse favourite flag to bookmark collections, and seeds the starter
// collections for first-time users. Every step is idempotent: re-running the
// whole sequence creates no duplicate collections and no duplicate links.
package migration

import (
	"fmt"
	"log"
	"strings"

	"github.com/sunsiz/QuranApp/internal/entities"
)

// Accepted names of the default favourites collection. The name was
// localized differently across app versions, so both spellings are checked
// by exact match and either counts as the existing default.
var defaultCollectionNames = []string{
	"❤️ Belgilangan oyatlar",
	"❤️ Белгиланган оятлар",
}

const (
	defaultCollectionDescription = "Sevimli oyatlaringiz"
	defaultCollectionColor       = "#DC143C"
)

// Starter collections seeded once for first-time users.
var sampleCollections = []entities.BookmarkCollection{
	{Name: "📿 Дуолар", Description: "Қуръондаги дуолар", DisplayOrder: 1, ColorCode: "#228B22"},
	{Name: "🌙 Ҳар куни ўқиш", Description: "Кундалик вирд учун оятлар", DisplayOrder: 2, ColorCode: "#4169E1"},
	{Name: "⭐ Муҳим оятлар", Description: "Эсда сақлаш учун муҳим оятлар", DisplayOrder: 3, ColorCode: "#FF8C00"},
}

// CollectionStore is the subset of the collections repository the migrator
// needs.
type CollectionStore interface {
	FindByName(name string) (*entities.BookmarkCollection, error)
	List(forceRefresh bool) ([]entities.BookmarkCollection, error)
	Seed(collection *entities.BookmarkCollection) error
	AddAya(ayaID, collectionID int, notes string) (int, error)
}

// FavouriteSource yields the verses currently flagged as favourites.
type FavouriteSource interface {
	ListFavouriteAyas() ([]entities.Aya, error)
}

// Flags persists the two one-time completion markers.
type Flags interface {
	FavoritesMigrated() bool
	SetFavoritesMigrated() error
	SampleCollectionsSeeded() bool
	SetSampleCollectionsSeeded() error
}

// Coordinator drives the favourites migration at startup.
type Coordinator struct {
	collections CollectionStore
	favourites  FavouriteSource
	flags       Flags
}

// NewCoordinator creates a migration coordinator.
func NewCoordinator(collections CollectionStore, favourites FavouriteSource, flags Flags) *Coordinator {
	return &Coordinator{collections: collections, favourites: favourites, flags: flags}
}

// NeedsMigration reports whether the favourites migration has not yet run.
func (c *Coordinator) NeedsMigration() bool {
	return !c.flags.FavoritesMigrated()
}

// CreateDefaultCollection looks up the default favourites collection under
// any of its accepted names and creates it when absent. Returns its id.
func (c *Coordinator) CreateDefaultCollection() (int, error) {
	for _, name := range defaultCollectionNames {
		existing, err := c.collections.FindByName(name)
		if err != nil {
			return 0, fmt.Errorf("look up favourites collection: %w", err)
		}
		if existing != nil {
			log.Printf("Favourites collection already exists with id %d", existing.ID)
			return existing.ID, nil
		}
	}

	collection := &entities.BookmarkCollection{
		Name:         defaultCollectionNames[0],
		Description:  defaultCollectionDescription,
		DisplayOrder: 0, // pinned before user collections
		ColorCode:    defaultCollectionColor,
	}
	if err := c.collections.Seed(collection); err != nil {
		return 0, err
	}
	log.Printf("Created default favourites collection with id %d", collection.ID)
	return collection.ID, nil
}

// SeedSampleCollections creates the starter collections once. A sample is
// skipped when a collection with a case-insensitively matching name already
// exists, so user renames and re-runs never produce duplicates.
func (c *Coordinator) SeedSampleCollections() (int, error) {
	existing, err := c.collections.List(true)
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, col := range existing {
		taken[strings.ToLower(strings.TrimSpace(col.Name))] = true
	}

	seeded := 0
	for _, sample := range sampleCollections {
		if taken[strings.ToLower(sample.Name)] {
			continue
		}
		collection := sample
		if err := c.collections.Seed(&collection); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

// MigrateFavorites links every favourite verse into the target collection,
// returning the number of new links. Already linked verses count as skipped,
// which is what makes re-running safe.
func (c *Coordinator) MigrateFavorites(collectionID int) (int, error) {
	favourites, err := c.favourites.ListFavouriteAyas()
	if err != nil {
		return 0, fmt.Errorf("list favourite ayas: %w", err)
	}
	log.Printf("Found %d favourite ayas to migrate", len(favourites))

	migrated := 0
	for _, aya := range favourites {
		added, err := c.collections.AddAya(aya.ID, collectionID, "")
		if err != nil {
			return migrated, fmt.Errorf("link aya %d:%d: %w", aya.SuraID, aya.AyaID, err)
		}
		if added > 0 {
			migrated++
		}
	}
	return migrated, nil
}

// MarkComplete persists the migration flag so the sequence never re-runs.
func (c *Coordinator) MarkComplete() error {
	return c.flags.SetFavoritesMigrated()
}

// Run executes the full startup sequence: default collection, favourites
// migration, sample seeding. Safe to call on every startup.
func (c *Coordinator) Run() error {
	if c.NeedsMigration() {
		collectionID, err := c.CreateDefaultCollection()
		if err != nil {
			return err
		}
		migrated, err := c.MigrateFavorites(collectionID)
		if err != nil {
			return err
		}
		if err := c.MarkComplete(); err != nil {
			return err
		}
		log.Printf("Migrated %d favourites to collection %d", migrated, collectionID)
	}

	if !c.flags.SampleCollectionsSeeded() {
		seeded, err := c.SeedSampleCollections()
		if err != nil {
			return err
		}
		if err := c.flags.SetSampleCollectionsSeeded(); err != nil {
			return err
		}
		if seeded > 0 {
			log.Printf("Seeded %d sample collections", seeded)
		}
	}
	return nil
}
