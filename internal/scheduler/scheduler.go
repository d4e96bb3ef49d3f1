package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Refresher is the refresh pipeline entry point the daily job invokes.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler fires the news refresh once per day at a fixed wall-clock hour,
// independent of the freshness policy. Serialization with inline refreshes
// happens inside the Refresher itself.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	hour      int
	timeout   time.Duration
}

// New creates a Scheduler firing daily at the given UTC hour.
func New(refresher Refresher, hour int, timeout time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		hour:      hour,
		timeout:   timeout,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	at := fmt.Sprintf("%02d:00", s.hour)

	_, err := s.scheduler.Every(1).Day().At(at).Do(func() {
		logrus.Info("scheduler: running daily news refresh")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.refresher.Refresh(ctx); err != nil {
			logrus.Errorf("scheduler: news refresh failed: %v", err)
			return
		}
		logrus.Info("scheduler: daily news refresh completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
