package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsiz/QuranApp/internal/entities"
)

type fakeVersionStore struct {
	version      string
	updateDate   string
	checkedCount int
}

func (s *fakeVersionStore) DatabaseVersion() string { return s.version }
func (s *fakeVersionStore) SetDatabaseVersion(version string) error {
	s.version = version
	return nil
}
func (s *fakeVersionStore) SetDatabaseUpdateDate(date string) error {
	s.updateDate = date
	return nil
}
func (s *fakeVersionStore) RecordUpdateCheck() error {
	s.checkedCount++
	return nil
}

// newUpdateServer serves a manifest plus the source database file the way a
// static file host would.
func newUpdateServer(t *testing.T, manifest Manifest, dbPath string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/"+ManifestFileName, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(manifest))
	})
	mux.HandleFunc("/"+manifest.FileName, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, dbPath)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func buildManifest(t *testing.T, version, dbPath string) Manifest {
	t.Helper()
	digest, err := FileSHA256(dbPath)
	require.NoError(t, err)
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	return Manifest{
		Version:  version,
		Date:     time.Now().Format("2006-01-02"),
		FileName: "quran.db",
		Size:     info.Size(),
		SHA256:   digest,
	}
}

func TestCoordinator_CheckForUpdate(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "published.db")
	createQuranDB(t, sourcePath, nil)

	manifest := buildManifest(t, "2.1", sourcePath)
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, filepath.Join(dir, "local.db"), dir, versions)

	result, err := coordinator.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "2.0", result.CurrentVersion)
	assert.Equal(t, "2.1", result.Manifest.Version)
	assert.Equal(t, 1, versions.checkedCount)
}

func TestCoordinator_CheckForUpdate_UpToDate(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "published.db")
	createQuranDB(t, sourcePath, nil)

	manifest := buildManifest(t, "2.0", sourcePath)
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, filepath.Join(dir, "local.db"), dir, versions)

	result, err := coordinator.CheckForUpdate(context.Background())
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCoordinator_Update_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "local.db")
	sourcePath := filepath.Join(dir, "published.db")
	cacheDir := filepath.Join(dir, "cache")

	createQuranDB(t, localPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Эски таржима", IsFavorite: true},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янги таржима"},
	})

	manifest := buildManifest(t, "2.1", sourcePath)
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, localPath, cacheDir, versions)

	var statuses []Status
	result, err := coordinator.Update(context.Background(), func(p Progress) {
		if len(statuses) == 0 || statuses[len(statuses)-1] != p.Status {
			statuses = append(statuses, p.Status)
		}
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Updated)

	merged := readAya(t, localPath, 1, 1)
	assert.Equal(t, "Янги таржима", merged.Text)
	assert.True(t, merged.IsFavorite)

	// Version bookkeeping persisted
	assert.Equal(t, "2.1", versions.version)
	assert.Equal(t, manifest.Date, versions.updateDate)

	// Temp and backup files cleaned up
	_, err = os.Stat(filepath.Join(cacheDir, manifest.FileName+".tmp"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(localPath + ".backup")
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, []Status{StatusChecking, StatusDownloading, StatusVerifying, StatusMerging, StatusDone}, statuses)
}

func TestCoordinator_Update_AlreadyCurrent(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "published.db")
	createQuranDB(t, sourcePath, nil)

	manifest := buildManifest(t, "2.0", sourcePath)
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, filepath.Join(dir, "local.db"), dir, versions)

	result, err := coordinator.Update(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCoordinator_DownloadAndInstall_ChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "local.db")
	sourcePath := filepath.Join(dir, "published.db")

	createQuranDB(t, localPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Эски таржима"},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янги таржима"},
	})

	manifest := buildManifest(t, "2.1", sourcePath)
	manifest.SHA256 = "0000000000000000000000000000000000000000000000000000000000000000"
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, localPath, dir, versions)

	_, err := coordinator.DownloadAndInstall(context.Background(), &manifest, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	// Local database untouched, version unchanged
	aya := readAya(t, localPath, 1, 1)
	assert.Equal(t, "Эски таржима", aya.Text)
	assert.Equal(t, "2.0", versions.version)
}

func TestCoordinator_DownloadAndInstall_RestoresBackupOnMergeFailure(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "local.db")
	sourcePath := filepath.Join(dir, "published.db")

	createQuranDB(t, localPath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Биринчи оят"},
		{SuraID: 1, AyaID: 2, Text: "Иккинчи оят"},
	})
	createQuranDB(t, sourcePath, []entities.Aya{
		{SuraID: 1, AyaID: 1, Text: "Янги биринчи"},
		{SuraID: 1, AyaID: 2, Text: "Янги иккинчи"},
	})

	// Force the merge transaction to abort partway through
	db, err := gormOpenSilent(localPath)
	require.NoError(t, err)
	err = db.Exec(`CREATE TRIGGER fail_second_update BEFORE UPDATE ON Aya
		WHEN NEW.AyaId = 2
		BEGIN SELECT RAISE(ABORT, 'forced failure'); END`).Error
	require.NoError(t, err)
	closeGorm(db)

	manifest := buildManifest(t, "2.1", sourcePath)
	server := newUpdateServer(t, manifest, sourcePath)

	versions := &fakeVersionStore{version: "2.0"}
	coordinator := NewCoordinator(server.URL, localPath, dir, versions)

	_, err = coordinator.DownloadAndInstall(context.Background(), &manifest, nil)
	require.Error(t, err)

	// Local database restored from backup, version unchanged
	aya := readAya(t, localPath, 1, 1)
	assert.Equal(t, "Биринчи оят", aya.Text)
	assert.Equal(t, "2.0", versions.version)
}
