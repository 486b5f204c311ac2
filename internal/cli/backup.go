// Package cli implements the command line subcommands that run without the
// HTTP server: user data backup, restore and translation updates.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sunsiz/QuranApp/internal/config"
	"github.com/sunsiz/QuranApp/internal/database"
	"github.com/sunsiz/QuranApp/internal/database/content"
	"github.com/sunsiz/QuranApp/internal/database/favourites"
	"github.com/sunsiz/QuranApp/internal/database/notes"
	"github.com/sunsiz/QuranApp/internal/database/settings"
	"github.com/sunsiz/QuranApp/internal/export"
	"github.com/sunsiz/QuranApp/internal/prefs"
)

// appContext bundles the stores a CLI command needs.
type appContext struct {
	db        *database.Database
	exporter  *export.Service
	prefStore *prefs.Store
}

func openApp(dbPath, templatePath, version string) (*appContext, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db := database.New(absPath, templatePath)
	if err := db.EnsureInitialized(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := db.DB()
	if err != nil {
		db.Close()
		return nil, err
	}

	contentRepo := content.NewRepository(gormDB, db.Path())
	notesRepo := notes.NewRepository(gormDB, contentRepo)
	favouritesRepo := favourites.NewRepository(gormDB, contentRepo)
	prefStore := prefs.New(settings.NewRepository(gormDB))

	return &appContext{
		db:        db,
		exporter:  export.NewService(notesRepo, favouritesRepo, version),
		prefStore: prefStore,
	}, nil
}

func (a *appContext) close() {
	a.db.Close()
}

// BackupCommand dumps notes and favourites to a JSON file.
type BackupCommand struct {
	DatabasePath string
	TemplatePath string
	OutputPath   string
	Version      string
}

// NewBackupCommand creates a new BackupCommand.
func NewBackupCommand(version string) *BackupCommand {
	return &BackupCommand{Version: version}
}

// ParseFlags parses command line flags.
func (cmd *BackupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the translation database")
	fs.StringVar(&cmd.TemplatePath, "template", config.DefaultTemplatePath, "Path to the bundled template database")
	fs.StringVar(&cmd.OutputPath, "output", "./quran-backup.json", "Output file for the backup")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s backup [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export notes and favourite verses to a JSON file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the backup command.
func (cmd *BackupCommand) Run() error {
	app, err := openApp(cmd.DatabasePath, cmd.TemplatePath, cmd.Version)
	if err != nil {
		return err
	}
	defer app.close()

	payload, err := app.exporter.ExportToJSON()
	if err != nil {
		return fmt.Errorf("failed to export user data: %w", err)
	}
	if err := os.WriteFile(cmd.OutputPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	fmt.Printf("Backup written to %s (%d bytes)\n", cmd.OutputPath, len(payload))
	return nil
}

// RestoreCommand imports notes and favourites from a JSON backup.
type RestoreCommand struct {
	DatabasePath string
	TemplatePath string
	InputPath    string
	Version      string
}

// NewRestoreCommand creates a new RestoreCommand.
func NewRestoreCommand(version string) *RestoreCommand {
	return &RestoreCommand{Version: version}
}

// ParseFlags parses command line flags.
func (cmd *RestoreCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the translation database")
	fs.StringVar(&cmd.TemplatePath, "template", config.DefaultTemplatePath, "Path to the bundled template database")
	fs.StringVar(&cmd.InputPath, "input", "./quran-backup.json", "Backup file to restore from")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s restore [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Restore notes and favourite verses from a JSON backup.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the restore command.
func (cmd *RestoreCommand) Run() error {
	payload, err := os.ReadFile(cmd.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	app, err := openApp(cmd.DatabasePath, cmd.TemplatePath, cmd.Version)
	if err != nil {
		return err
	}
	defer app.close()

	result, err := app.exporter.ImportFromJSON(payload)
	if err != nil {
		return fmt.Errorf("failed to import user data: %w", err)
	}
	fmt.Printf("Restored %d notes and %d favourites\n", result.NotesImported, result.FavoritesImported)
	return nil
}
