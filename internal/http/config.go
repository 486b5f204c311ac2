package http

import (
	"github.com/sunsiz/QuranApp/internal/database"
	"github.com/sunsiz/QuranApp/internal/prefs"
)

// RouterConfig carries every dependency the router needs. Optional fields
// may be nil, in which case the corresponding endpoints are not registered.
type RouterConfig struct {
	Database *database.Database
	Version  string

	Content     ContentStore
	Notes       NoteStore
	Favourites  FavouriteStore
	Collections CollectionStore
	Progress    ProgressStore
	Prefs       *prefs.Store
	Exporter    Exporter
	Updater     Updater
}
