package ingestion

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically rescans registered datasets for changed source
// files on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	svc    *Service
	logger *slog.Logger
}

// NewScheduler creates a rescan scheduler for the given cron spec. An empty
// spec disables scheduling and returns a nil Scheduler, on which Start and
// Stop are no-ops.
func NewScheduler(svc *Service, spec string, logger *slog.Logger) (*Scheduler, error) {
	if spec == "" {
		return nil, nil
	}

	s := &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		logger: logger.With("component", "rescan-scheduler"),
	}
	_, err := s.cron.AddFunc(spec, func() {
		refreshed, err := s.svc.Rescan(context.Background())
		if err != nil {
			s.logger.Warn("scheduled rescan failed", "error", err)
			return
		}
		if refreshed > 0 {
			s.logger.Info("scheduled rescan refreshed datasets", "count", refreshed)
		}
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the cron schedule.
func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("rescan scheduler started")
}

// Stop stops the cron schedule.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.cron.Stop()
	s.logger.Info("rescan scheduler stopped")
}
