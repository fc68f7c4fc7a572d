package scheduler

import (
	"time"

	"clubsphere-backend/internal/jobs"
	"clubsphere-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if cfg.RefreshProjections != "" {
		if _, err := s.cron.AddFunc(cfg.RefreshProjections, s.jobs.RefreshProjections); err != nil {
			logger.Error("failed to register RefreshProjections job", "error", err)
		}
	}

	if cfg.SendPendingReminder != "" {
		if _, err := s.cron.AddFunc(cfg.SendPendingReminder, s.jobs.SendPendingReminder); err != nil {
			logger.Error("failed to register SendPendingReminder job", "error", err)
		}
	}
}

// Start begins running the scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}
