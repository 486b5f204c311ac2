// Package update implements the translation database update protocol: a
// JSON manifest on a static file server describes the latest published
// database, which is downloaded, checksum-verified and merged into the
// local database without losing user state.
package update

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// downloadTimeout bounds the whole manifest-plus-database exchange. The
// database is a few tens of megabytes and users may be on slow mobile
// links, hence the generous value.
const downloadTimeout = 5 * time.Minute

// Status identifies the phase a running update is in.
type Status string

const (
	StatusChecking    Status = "checking"
	StatusDownloading Status = "downloading"
	StatusVerifying   Status = "verifying"
	StatusMerging     Status = "merging"
	StatusDone        Status = "done"
)

// Progress is reported to the caller while an update runs.
type Progress struct {
	Status          Status
	BytesDownloaded int64
	TotalBytes      int64
}

// ProgressFunc receives progress updates. May be nil.
type ProgressFunc func(Progress)

// VersionStore persists the installed database version and related
// bookkeeping between runs.
type VersionStore interface {
	DatabaseVersion() string
	SetDatabaseVersion(version string) error
	SetDatabaseUpdateDate(date string) error
	RecordUpdateCheck() error
}

// CheckResult is the outcome of an update check.
type CheckResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	Manifest        *Manifest
}

// Coordinator drives update checks and installs against a single local
// database.
type Coordinator struct {
	baseURL  string
	dbPath   string
	cacheDir string
	versions VersionStore
	client   *http.Client
}

// NewCoordinator creates an update coordinator. baseURL is the directory
// URL the manifest and database files are published under, dbPath the live
// translation database and cacheDir a writable directory for temporary
// downloads.
func NewCoordinator(baseURL, dbPath, cacheDir string, versions VersionStore) *Coordinator {
	return &Coordinator{
		baseURL:  baseURL,
		dbPath:   dbPath,
		cacheDir: cacheDir,
		versions: versions,
		client:   &http.Client{Timeout: downloadTimeout},
	}
}

// CheckForUpdate fetches the manifest and compares its version against the
// installed one. The last-check timestamp is recorded on every successful
// fetch regardless of the outcome.
func (c *Coordinator) CheckForUpdate(ctx context.Context) (*CheckResult, error) {
	manifest, err := fetchManifest(ctx, c.client, c.baseURL)
	if err != nil {
		return nil, err
	}
	if err := c.versions.RecordUpdateCheck(); err != nil {
		log.Printf("Failed to record update check time: %v", err)
	}

	current := c.versions.DatabaseVersion()
	cmp, err := CompareVersions(manifest.Version, current)
	if err != nil {
		return nil, fmt.Errorf("compare versions: %w", err)
	}
	return &CheckResult{
		UpdateAvailable: cmp > 0,
		CurrentVersion:  current,
		Manifest:        manifest,
	}, nil
}

// DownloadAndInstall downloads the database named by the manifest, verifies
// its checksum and merges its translations into the live database. The live
// database is backed up first and restored if the merge fails, so a failed
// update never leaves it corrupted.
func (c *Coordinator) DownloadAndInstall(ctx context.Context, manifest *Manifest, progress ProgressFunc) (*MergeResult, error) {
	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	tempPath := filepath.Join(c.cacheDir, manifest.FileName+".tmp")

	report(Progress{Status: StatusDownloading, TotalBytes: manifest.Size})
	if err := c.download(ctx, manifest, tempPath, report); err != nil {
		os.Remove(tempPath)
		return nil, err
	}

	report(Progress{Status: StatusVerifying, BytesDownloaded: manifest.Size, TotalBytes: manifest.Size})
	digest, err := FileSHA256(tempPath)
	if err != nil {
		os.Remove(tempPath)
		return nil, err
	}
	if !ChecksumMatches(digest, manifest.SHA256) {
		os.Remove(tempPath)
		return nil, fmt.Errorf("checksum mismatch: got %s, want %s", digest, manifest.SHA256)
	}

	backupPath := c.dbPath + ".backup"
	if err := copyFile(c.dbPath, backupPath); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("back up database: %w", err)
	}

	report(Progress{Status: StatusMerging, BytesDownloaded: manifest.Size, TotalBytes: manifest.Size})
	result, err := mergeTranslations(tempPath, c.dbPath)
	if err != nil {
		log.Printf("Merge failed, restoring database from backup: %v", err)
		if restoreErr := copyFile(backupPath, c.dbPath); restoreErr != nil {
			return nil, fmt.Errorf("merge failed (%v) and restore failed: %w", err, restoreErr)
		}
		os.Remove(backupPath)
		os.Remove(tempPath)
		return nil, fmt.Errorf("merge translations: %w", err)
	}

	if err := c.versions.SetDatabaseVersion(manifest.Version); err != nil {
		log.Printf("Failed to persist database version: %v", err)
	}
	if err := c.versions.SetDatabaseUpdateDate(manifest.Date); err != nil {
		log.Printf("Failed to persist database update date: %v", err)
	}

	os.Remove(backupPath)
	os.Remove(tempPath)
	report(Progress{Status: StatusDone, BytesDownloaded: manifest.Size, TotalBytes: manifest.Size})
	log.Printf("Translation database updated to version %s (%d updated, %d skipped)",
		manifest.Version, result.Updated, result.Skipped)
	return result, nil
}

// Update runs a check followed by an install when a newer version is
// published. Returns nil, nil when already up to date.
func (c *Coordinator) Update(ctx context.Context, progress ProgressFunc) (*MergeResult, error) {
	if progress != nil {
		progress(Progress{Status: StatusChecking})
	}
	check, err := c.CheckForUpdate(ctx)
	if err != nil {
		return nil, err
	}
	if !check.UpdateAvailable {
		log.Printf("Translation database is up to date (version %s)", check.CurrentVersion)
		return nil, nil
	}
	return c.DownloadAndInstall(ctx, check.Manifest, progress)
}

func (c *Coordinator) download(ctx context.Context, manifest *Manifest, dest string, report func(Progress)) error {
	url := joinURL(c.baseURL, manifest.FileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("download database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download request returned status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	var written int64
	buf := make([]byte, 64*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				return fmt.Errorf("write temp file: %w", writeErr)
			}
			written += int64(n)
			report(Progress{Status: StatusDownloading, BytesDownloaded: written, TotalBytes: manifest.Size})
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			return fmt.Errorf("read download stream: %w", readErr)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
