// Package entrypoint wires the application together and runs the HTTP
// server with graceful shutdown.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunsiz/QuranApp/internal/config"
	"github.com/sunsiz/QuranApp/internal/database"
	"github.com/sunsiz/QuranApp/internal/database/collections"
	"github.com/sunsiz/QuranApp/internal/database/content"
	"github.com/sunsiz/QuranApp/internal/database/favourites"
	"github.com/sunsiz/QuranApp/internal/database/notes"
	"github.com/sunsiz/QuranApp/internal/database/progress"
	"github.com/sunsiz/QuranApp/internal/database/settings"
	"github.com/sunsiz/QuranApp/internal/export"
	http_controllers "github.com/sunsiz/QuranApp/internal/http"
	"github.com/sunsiz/QuranApp/internal/migration"
	"github.com/sunsiz/QuranApp/internal/prefs"
	"github.com/sunsiz/QuranApp/internal/scheduler"
	"github.com/sunsiz/QuranApp/internal/tasks"
	"github.com/sunsiz/QuranApp/internal/update"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// taskEnqueuer adapts the task client to the scheduler's Enqueuer
// interface.
type taskEnqueuer struct {
	client *tasks.Client
}

func (e *taskEnqueuer) EnqueueUpdateCheck(reason string) error {
	_, err := e.client.Add(tasks.UpdateCheckTask{Reason: reason}).Save()
	return err
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop background workers)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Quran server v%s", version)

	// Initialize database, copying the bundled template on first run
	db := database.New(cfg.Database.Path, cfg.Database.TemplatePath)
	if err := db.EnsureInitialized(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	gormDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}

	// Repositories
	contentRepo := content.NewRepository(gormDB, db.Path())
	notesRepo := notes.NewRepository(gormDB, contentRepo)
	favouritesRepo := favourites.NewRepository(gormDB, contentRepo)
	collectionsRepo := collections.NewRepository(gormDB, contentRepo)
	progressRepo := progress.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	prefStore := prefs.New(settingsRepo)

	// One-time favourites migration and sample seeding
	migrator := migration.NewCoordinator(collectionsRepo, favouritesRepo, prefStore)
	if err := migrator.Run(); err != nil {
		log.Fatalf("Failed to run startup migration: %v", err)
	}

	exporter := export.NewService(notesRepo, favouritesRepo, version)

	// Update coordinator, only when a server is configured
	var updater *update.Coordinator
	if cfg.Update.BaseURL != "" {
		updater = update.NewCoordinator(cfg.Update.BaseURL, db.Path(), cfg.Update.CacheDir, prefStore)
	} else {
		log.Printf("WARNING: Update server is not set. Update endpoints will be disabled. Set 'UPDATE_BASE_URL' environment variable to enable.")
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var updateScheduler *scheduler.UpdateCheckScheduler
	if cfg.Tasks.Enabled && updater != nil {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		enqueueInstall := func(t tasks.UpdateInstallTask) error {
			_, err := taskClient.Add(t).Save()
			return err
		}
		taskClient.Register(
			tasks.NewUpdateCheckQueue(updater, enqueueInstall),
			tasks.NewUpdateInstallQueue(updater),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Periodic update checks
		updateScheduler = scheduler.NewUpdateCheckScheduler(
			&taskEnqueuer{client: taskClient},
			cfg.Update.CheckSchedule,
			cfg.Update.CheckEnabled,
		)
		if err := updateScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start update scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:    db,
		Version:     version,
		Content:     contentRepo,
		Notes:       notesRepo,
		Favourites:  favouritesRepo,
		Collections: collectionsRepo,
		Progress:    progressRepo,
		Prefs:       prefStore,
		Exporter:    exporter,
	}
	if updater != nil {
		routerCfg.Updater = updater
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if updateScheduler != nil {
			updateScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
