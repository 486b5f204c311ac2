package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/sunsiz/QuranApp/internal/update"
)

// UpdateInstallTask downloads and merges the published translation
// database.
type UpdateInstallTask struct {
	Version string `json:"version"`
}

// Config returns the queue configuration for update install tasks. A single
// attempt only: the coordinator restores from backup on failure and a blind
// retry against a broken mirror would just repeat the download.
func (t UpdateInstallTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "update_install",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// UpdateInstallProcessor creates a processor function for UpdateInstallTask.
func UpdateInstallProcessor(updater *update.Coordinator) backlite.QueueProcessor[UpdateInstallTask] {
	return func(ctx context.Context, task UpdateInstallTask) error {
		if updater == nil {
			return fmt.Errorf("updater not configured")
		}

		result, err := updater.Update(ctx, nil)
		if err != nil {
			return fmt.Errorf("install update %s: %w", task.Version, err)
		}
		if result == nil {
			log.Printf("[TASK] Update %s already installed", task.Version)
			return nil
		}
		log.Printf("[TASK] Installed update %s: %d ayas updated, %d skipped",
			task.Version, result.Updated, result.Skipped)
		return nil
	}
}

// NewUpdateInstallQueue creates a backlite queue for update install tasks.
func NewUpdateInstallQueue(updater *update.Coordinator) backlite.Queue {
	return backlite.NewQueue(UpdateInstallProcessor(updater))
}
