// Package scheduler runs the server's periodic jobs.
package scheduler

import (
	"alcyxob/fitcoach/internal/service"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron"
)

// DefaultSpec runs the reminder job once a day at midnight.
const DefaultSpec = "@daily"

// Scheduler owns a cron instance with the routine-ending reminder job.
type Scheduler struct {
	cron      *cron.Cron
	reminders service.ReminderService
	window    time.Duration
	timeout   time.Duration
	now       func() time.Time
}

// New registers the reminder job under spec. windowDays is how far ahead a
// routine end date triggers a reminder.
func New(reminders service.ReminderService, spec string, windowDays int) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("reminder window must be positive, got %d", windowDays)
	}
	s := &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		window:    time.Duration(windowDays) * 24 * time.Hour,
		timeout:   time.Minute,
		now:       time.Now,
	}
	if err := s.cron.AddFunc(spec, s.RunReminders); err != nil {
		return nil, fmt.Errorf("invalid scheduler spec %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	log.Println("INFO: Scheduler started")
	s.cron.Start()
}

// Stop halts future runs. A job already running is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("INFO: Scheduler stopped")
}

// RunReminders executes the reminder job once.
func (s *Scheduler) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.reminders.SendEndingReminders(ctx, s.now().UTC(), s.window); err != nil {
		log.Printf("ERROR: Reminder job failed: %v", err)
	}
}
