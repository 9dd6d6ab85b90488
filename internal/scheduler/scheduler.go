package scheduler

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/service"
	"github.com/robfig/cron/v3"
)

// Scheduler triggers the three batch entry points on their configured
// cron specs. It is an optional convenience for single-instance
// deployments; any external scheduler can call the same entry points
// through the cron HTTP endpoints instead.
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Configuration
	logger *logger.Logger

	billing      service.BillingService
	overdue      service.OverdueService
	compensation service.CompensationService
}

// NewScheduler creates a new scheduler.
func NewScheduler(
	cfg *config.Configuration,
	log *logger.Logger,
	billing service.BillingService,
	overdue service.OverdueService,
	compensation service.CompensationService,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		cfg:          cfg,
		logger:       log,
		billing:      billing,
		overdue:      overdue,
		compensation: compensation,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context, now time.Time) error
	}{
		{
			name: "billing_cycle",
			spec: s.cfg.Scheduler.BillingCronSpec,
			run: func(ctx context.Context, now time.Time) error {
				_, err := s.billing.RunBillingCycle(ctx, now)
				return err
			},
		},
		{
			name: "overdue_detection",
			spec: s.cfg.Scheduler.OverdueCronSpec,
			run: func(ctx context.Context, now time.Time) error {
				_, err := s.overdue.DetectOverdue(ctx, now)
				return err
			},
		},
		{
			name: "compensation_notifications",
			spec: s.cfg.Scheduler.CompensationCronSpec,
			run: func(ctx context.Context, now time.Time) error {
				_, err := s.compensation.SendPendingNotifications(ctx, now)
				return err
			},
		},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() {
			now := time.Now().UTC()
			s.logger.Infow("scheduled job starting", "job", job.name, "time", now.Format(time.RFC3339))
			if err := job.run(context.Background(), now); err != nil {
				s.logger.Errorw("scheduled job failed", "job", job.name, "error", err)
				return
			}
			s.logger.Infow("scheduled job completed", "job", job.name)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
