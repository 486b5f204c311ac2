package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/sunsiz/QuranApp/internal/update"
)

// UpdateCheckTask fetches the update manifest and, when a newer translation
// database is published, enqueues an install.
type UpdateCheckTask struct {
	Reason string `json:"reason"`
}

// Config returns the queue configuration for update check tasks.
func (t UpdateCheckTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "update_check",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// UpdateCheckProcessor creates a processor function for UpdateCheckTask.
// The enqueue callback schedules the follow-up install task.
func UpdateCheckProcessor(updater *update.Coordinator, enqueue func(UpdateInstallTask) error) backlite.QueueProcessor[UpdateCheckTask] {
	return func(ctx context.Context, task UpdateCheckTask) error {
		if updater == nil {
			return fmt.Errorf("updater not configured")
		}

		result, err := updater.CheckForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("check for update: %w", err)
		}
		if !result.UpdateAvailable {
			log.Printf("[TASK] Translation database is up to date (version %s)", result.CurrentVersion)
			return nil
		}

		log.Printf("[TASK] Update available: %s -> %s", result.CurrentVersion, result.Manifest.Version)
		if enqueue == nil {
			return nil
		}
		return enqueue(UpdateInstallTask{Version: result.Manifest.Version})
	}
}

// NewUpdateCheckQueue creates a backlite queue for update check tasks.
func NewUpdateCheckQueue(updater *update.Coordinator, enqueue func(UpdateInstallTask) error) backlite.Queue {
	return backlite.NewQueue(UpdateCheckProcessor(updater, enqueue))
}
