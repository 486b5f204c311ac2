// Package interfaces holds compile-time interface implementation checks.
// These ensure that concrete types satisfy their consumer-side interfaces,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...
package interfaces

import (
	"github.com/sunsiz/QuranApp/internal/database/collections"
	"github.com/sunsiz/QuranApp/internal/database/content"
	"github.com/sunsiz/QuranApp/internal/database/favourites"
	"github.com/sunsiz/QuranApp/internal/database/notes"
	"github.com/sunsiz/QuranApp/internal/database/progress"
	"github.com/sunsiz/QuranApp/internal/database/settings"
	"github.com/sunsiz/QuranApp/internal/export"
	"github.com/sunsiz/QuranApp/internal/http"
	"github.com/sunsiz/QuranApp/internal/migration"
	"github.com/sunsiz/QuranApp/internal/prefs"
	"github.com/sunsiz/QuranApp/internal/update"
)

// =============================================================================
// HTTP Layer
// =============================================================================

var _ http.ContentStore = (*content.Repository)(nil)
var _ http.NoteStore = (*notes.Repository)(nil)
var _ http.FavouriteStore = (*favourites.Repository)(nil)
var _ http.CollectionStore = (*collections.Repository)(nil)
var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.Exporter = (*export.Service)(nil)
var _ http.Updater = (*update.Coordinator)(nil)

// =============================================================================
// Migration
// =============================================================================

var _ migration.CollectionStore = (*collections.Repository)(nil)
var _ migration.FavouriteSource = (*favourites.Repository)(nil)
var _ migration.Flags = (*prefs.Store)(nil)

// =============================================================================
// Preferences and Update Tracking
// =============================================================================

var _ prefs.Backend = (*settings.Repository)(nil)
var _ update.VersionStore = (*prefs.Store)(nil)

// =============================================================================
// Export Pipeline
// =============================================================================

var _ export.NoteStore = (*notes.Repository)(nil)
var _ export.FavouriteStore = (*favourites.Repository)(nil)

// =============================================================================
// Sura Name Resolution
// =============================================================================

var _ notes.SuraNamer = (*content.Repository)(nil)
var _ favourites.SuraNamer = (*content.Repository)(nil)
var _ collections.SuraNamer = (*content.Repository)(nil)
