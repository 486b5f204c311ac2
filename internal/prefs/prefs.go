// Package prefs exposes typed accessors over the persisted key/value
// preference rows. The key set is fixed and enumerated here; nothing else in
// the codebase references raw preference keys.
package prefs

import (
	"strconv"
	"time"
)

// Preference keys. Unexported on purpose: the typed accessors below are the
// only way in and out.
const (
	keyBookmark          = "Bookmark"
	keyUzbekScript       = "UzbekScript"
	keyArabicFontSize    = "ArabicFontSize"
	keyTranslateFontSize = "TranslateFontSize"
	keyCommentFontSize   = "CommentFontSize"
	keyTheme             = "Theme"
	keyDatabaseVersion   = "DatabaseVersion"
	keyDatabaseUpdated   = "DatabaseUpdateDate"
	keyLastUpdateCheck   = "LastUpdateCheck"
	keyFavoritesMigrated = "FavoritesMigrated"
	keySamplesSeeded     = "SampleCollectionsSeeded"
	keySearchHistory     = "SearchHistory"
)

// Defaults.
const (
	DefaultBookmark          = "49:11"
	DefaultScript            = "Cyrillic"
	DefaultTheme             = "Light"
	DefaultArabicFontSize    = 16
	DefaultTranslateFontSize = 14
	DefaultCommentFontSize   = 12
	DefaultDatabaseVersion   = "2.0"
)

// Font size bounds. Sets outside the range are ignored.
const (
	minArabicFontSize    = 12
	maxArabicFontSize    = 32
	minTranslateFontSize = 12
	maxTranslateFontSize = 24
	minCommentFontSize   = 10
	maxCommentFontSize   = 20
)

// Backend is the key/value port the store persists through, implemented by
// the settings repository.
type Backend interface {
	Value(key, fallback string) string
	Set(key, value string) error
	Delete(key string) error
}

// Store provides typed, bounded preference access.
type Store struct {
	backend Backend
}

// New creates a preference store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) getInt(key string, fallback int) int {
	v, err := strconv.Atoi(s.backend.Value(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func (s *Store) getBool(key string) bool {
	return s.backend.Value(key, "false") == "true"
}

// Bookmark returns the last reading position as "SuraId:AyaId".
func (s *Store) Bookmark() string {
	return s.backend.Value(keyBookmark, DefaultBookmark)
}

func (s *Store) SetBookmark(position string) error {
	return s.backend.Set(keyBookmark, position)
}

// Script returns the preferred Uzbek script, "Cyrillic" or "Latin".
func (s *Store) Script() string {
	return s.backend.Value(keyUzbekScript, DefaultScript)
}

func (s *Store) SetScript(script string) error {
	return s.backend.Set(keyUzbekScript, script)
}

func (s *Store) Theme() string {
	return s.backend.Value(keyTheme, DefaultTheme)
}

func (s *Store) SetTheme(theme string) error {
	return s.backend.Set(keyTheme, theme)
}

func (s *Store) ArabicFontSize() int {
	return s.getInt(keyArabicFontSize, DefaultArabicFontSize)
}

// SetArabicFontSize stores the size if it is within bounds; out-of-range
// values are ignored.
func (s *Store) SetArabicFontSize(size int) error {
	if size < minArabicFontSize || size > maxArabicFontSize {
		return nil
	}
	return s.backend.Set(keyArabicFontSize, strconv.Itoa(size))
}

func (s *Store) TranslateFontSize() int {
	return s.getInt(keyTranslateFontSize, DefaultTranslateFontSize)
}

func (s *Store) SetTranslateFontSize(size int) error {
	if size < minTranslateFontSize || size > maxTranslateFontSize {
		return nil
	}
	return s.backend.Set(keyTranslateFontSize, strconv.Itoa(size))
}

func (s *Store) CommentFontSize() int {
	return s.getInt(keyCommentFontSize, DefaultCommentFontSize)
}

func (s *Store) SetCommentFontSize(size int) error {
	if size < minCommentFontSize || size > maxCommentFontSize {
		return nil
	}
	return s.backend.Set(keyCommentFontSize, strconv.Itoa(size))
}

// DatabaseVersion returns the installed translation-database version.
func (s *Store) DatabaseVersion() string {
	return s.backend.Value(keyDatabaseVersion, DefaultDatabaseVersion)
}

func (s *Store) SetDatabaseVersion(version string) error {
	return s.backend.Set(keyDatabaseVersion, version)
}

// SetDatabaseUpdateDate stores the publish date of the installed database,
// as reported by the update manifest.
func (s *Store) SetDatabaseUpdateDate(date string) error {
	return s.backend.Set(keyDatabaseUpdated, date)
}

// LastUpdateCheck returns the time of the last manifest check, or the zero
// time when no check has been recorded.
func (s *Store) LastUpdateCheck() time.Time {
	t, err := time.Parse(time.RFC3339, s.backend.Value(keyLastUpdateCheck, ""))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Store) RecordUpdateCheck() error {
	return s.backend.Set(keyLastUpdateCheck, time.Now().Format(time.RFC3339))
}

// FavoritesMigrated reports whether the one-time favourites-to-collections
// migration has completed.
func (s *Store) FavoritesMigrated() bool {
	return s.getBool(keyFavoritesMigrated)
}

func (s *Store) SetFavoritesMigrated() error {
	return s.backend.Set(keyFavoritesMigrated, "true")
}

// SampleCollectionsSeeded reports whether the first-run sample collections
// have been created.
func (s *Store) SampleCollectionsSeeded() bool {
	return s.getBool(keySamplesSeeded)
}

func (s *Store) SetSampleCollectionsSeeded() error {
	return s.backend.Set(keySamplesSeeded, "true")
}
