package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically sweeps pending follow-ups past
// their due date into the overdue state. Expired registration codes
// are deliberately not touched; expiry is checked at redemption time.
type HousekeepingService struct {
	FollowUps *FollowUpService
	Logger    *slog.Logger
	Interval  time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 5 minutes.
func NewHousekeepingService(followUps *FollowUpService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &HousekeepingService{
		FollowUps: followUps,
		Logger:    logger,
		Interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to
// shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	marked, err := s.FollowUps.SweepOverdue(ctx)
	if err != nil {
		s.Logger.Error("overdue follow-up sweep failed", "error", err)
		return
	}
	if marked > 0 {
		s.Logger.Info("overdue follow-up sweep completed", "marked", marked)
	} else {
		s.Logger.Debug("overdue follow-up sweep completed", "marked", marked)
	}
}
