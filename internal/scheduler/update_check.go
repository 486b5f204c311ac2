// Package scheduler triggers periodic translation update checks on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Enqueuer submits an update check to the background queue.
type Enqueuer interface {
	EnqueueUpdateCheck(reason string) error
}

// UpdateCheckScheduler manages periodic update checks.
type UpdateCheckScheduler struct {
	enqueuer Enqueuer
	schedule string
	enabled  bool

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewUpdateCheckScheduler creates a new scheduler instance. schedule is a
// five-field cron expression.
func NewUpdateCheckScheduler(enqueuer Enqueuer, schedule string, enabled bool) *UpdateCheckScheduler {
	return &UpdateCheckScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if update checks are enabled.
func (s *UpdateCheckScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.enabled {
		log.Printf("Update check scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.enqueuer.EnqueueUpdateCheck("scheduled"); err != nil {
			log.Printf("Update check scheduler: failed to enqueue check: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule update check: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Update check scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *UpdateCheckScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Update check scheduler: stopped")
}

// RunNow triggers an immediate check.
func (s *UpdateCheckScheduler) RunNow() error {
	return s.enqueuer.EnqueueUpdateCheck("manual")
}

// IsRunning returns whether the scheduler is active.
func (s *UpdateCheckScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next check will occur, or nil when the
// scheduler is not running.
func (s *UpdateCheckScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
