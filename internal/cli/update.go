package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sunsiz/QuranApp/internal/config"
	"github.com/sunsiz/QuranApp/internal/update"
)

// UpdateCommand checks for and installs translation database updates.
type UpdateCommand struct {
	DatabasePath string
	TemplatePath string
	BaseURL      string
	CacheDir     string
	CheckOnly    bool
	Version      string
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(version string) *UpdateCommand {
	return &UpdateCommand{Version: version}
}

// ParseFlags parses command line flags.
func (cmd *UpdateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the translation database")
	fs.StringVar(&cmd.TemplatePath, "template", config.DefaultTemplatePath, "Path to the bundled template database")
	fs.StringVar(&cmd.BaseURL, "url", os.Getenv("UPDATE_BASE_URL"), "Base URL of the update server")
	fs.StringVar(&cmd.CacheDir, "cache", config.DefaultCacheDir, "Directory for temporary downloads")
	fs.BoolVar(&cmd.CheckOnly, "check-only", false, "Only check for an update, do not install")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s update [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check the update server for a newer translation database and merge it in.\n")
		fmt.Fprintf(os.Stderr, "Notes, favourites and reading progress are preserved.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.BaseURL == "" {
		return fmt.Errorf("update server URL is required (use -url or UPDATE_BASE_URL)")
	}
	return nil
}

// Run executes the update command.
func (cmd *UpdateCommand) Run() error {
	app, err := openApp(cmd.DatabasePath, cmd.TemplatePath, cmd.Version)
	if err != nil {
		return err
	}
	defer app.close()

	coordinator := update.NewCoordinator(cmd.BaseURL, app.db.Path(), cmd.CacheDir, app.prefStore)
	ctx := context.Background()

	check, err := coordinator.CheckForUpdate(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for update: %w", err)
	}
	if !check.UpdateAvailable {
		fmt.Printf("Already up to date (version %s)\n", check.CurrentVersion)
		return nil
	}
	fmt.Printf("Update available: %s -> %s (%d bytes)\n",
		check.CurrentVersion, check.Manifest.Version, check.Manifest.Size)
	if cmd.CheckOnly {
		return nil
	}

	result, err := coordinator.DownloadAndInstall(ctx, check.Manifest, func(p update.Progress) {
		if p.Status == update.StatusDownloading && p.TotalBytes > 0 {
			fmt.Printf("\rDownloading: %d/%d bytes", p.BytesDownloaded, p.TotalBytes)
		}
	})
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to install update: %w", err)
	}
	fmt.Printf("Updated to version %s: %d verses updated, %d skipped\n",
		check.Manifest.Version, result.Updated, result.Skipped)
	return nil
}
