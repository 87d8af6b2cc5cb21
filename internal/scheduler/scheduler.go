package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"QuantAnalyst/internal/recorder"
)

// Scheduler runs housekeeping tasks for the evaluation audit trail.
type Scheduler struct {
	Cron      *cron.Cron
	Recorder  recorder.Recorder
	Retention time.Duration
	Ctx       context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler that keeps evaluation records for retention.
func NewScheduler(ctx context.Context, rec recorder.Recorder, retention time.Duration) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Recorder:  rec,
		Retention: retention,
		Ctx:       ctx,
		now:       time.Now,
	}
}

// Register registers the prune task on the given cron spec (with seconds).
func (s *Scheduler) Register(pruneCron string) error {
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunPruneNow deletes expired evaluation records immediately.
func (s *Scheduler) RunPruneNow() (int64, error) {
	cutoff := s.now().Add(-s.Retention)
	n, err := s.Recorder.PruneBefore(s.Ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

func (s *Scheduler) pruneTask() {
	n, err := s.RunPruneNow()
	if err != nil {
		log.Error().Err(err).Msg("prune evaluations")
		return
	}
	log.Info().Int64("deleted", n).Dur("retention", s.Retention).Msg("pruned evaluation records")
}
