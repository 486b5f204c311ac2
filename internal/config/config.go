package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Update
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path         string
		TemplatePath string
	}
	Update struct {
		BaseURL       string // Directory URL the manifest and database are published under
		CacheDir      string
		CheckEnabled  bool
		CheckSchedule string // Cron format: "0 4 * * *" = daily at 04:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_template_path", DefaultTemplatePath)

	// Update protocol defaults
	v.SetDefault("update_base_url", "")
	v.SetDefault("update_cache_dir", DefaultCacheDir)
	v.SetDefault("update_check_enabled", false)
	v.SetDefault("update_check_schedule", "0 4 * * *") // Daily at 04:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_PATH"),
			TemplatePath: v.GetString("DATABASE_TEMPLATE_PATH"),
		},
		Update: Update{
			BaseURL:       v.GetString("UPDATE_BASE_URL"),
			CacheDir:      v.GetString("UPDATE_CACHE_DIR"),
			CheckEnabled:  v.GetBool("UPDATE_CHECK_ENABLED"),
			CheckSchedule: v.GetString("UPDATE_CHECK_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
