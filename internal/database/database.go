package database

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunsiz/QuranApp/internal/entities"
)

var ErrNotInitialized = errors.New("database not initialized")

// Database wraps the shared gorm handle over the content database file.
// Construction is cheap; the file copy and schema creation happen lazily on
// first use, and at most once even when callers race.
type Database struct {
	path         string
	templatePath string

	mu          sync.Mutex
	initialized bool
	db          *gorm.DB
}

// New creates a lazily-initialized database over the given file. If the file
// does not exist yet, the bundled template at templatePath is copied into
// place during initialization.
func New(path, templatePath string) *Database {
	return &Database{path: path, templatePath: templatePath}
}

// EnsureInitialized provisions the database file and schema exactly once.
// Concurrent callers block until the first caller finishes.
func (d *Database) EnsureInitialized() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		return nil
	}
	if err := d.initialize(); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

func (d *Database) initialize() error {
	if _, err := os.Stat(d.path); os.IsNotExist(err) {
		if err := d.copyTemplate(); err != nil {
			return fmt.Errorf("provision database file: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(d.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The template ships Sura and Aya and may already define others; a table
	// that exists is not an error.
	models := []interface{}{
		&entities.Sura{},
		&entities.Aya{},
		&entities.Note{},
		&entities.BookmarkCollection{},
		&entities.AyaBookmarkCollection{},
		&entities.ReadingProgress{},
		&entities.AyaReadStatus{},
		&entities.Setting{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				continue
			}
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	d.db = db
	log.Printf("Database initialized at %s", d.path)
	return nil
}

func (d *Database) copyTemplate() error {
	if d.templatePath == "" {
		return nil // fresh empty database, schema comes from AutoMigrate
	}
	src, err := os.Open(d.templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Template database %s not found, starting empty", d.templatePath)
			return nil
		}
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(d.path)
		return err
	}
	log.Printf("Copied template database to %s", d.path)
	return nil
}

// DB ensures initialization and returns the shared gorm handle.
func (d *Database) DB() (*gorm.DB, error) {
	if err := d.EnsureInitialized(); err != nil {
		return nil, err
	}
	return d.db, nil
}

// Path returns the database file location. The update coordinator needs it
// for its own short-lived merge connections.
func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	d.initialized = false
	return sqlDB.Close()
}
