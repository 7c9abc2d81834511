package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/pkg/jobcontext"
)

const expirySweepJob = "interview_expiry_sweep"

// Expirer expires every active session past its expiry
type Expirer interface {
	ExpireDue(ctx context.Context) (int64, error)
}

// ExpirySweeper periodically moves overdue sessions to EXPIRED
type ExpirySweeper struct {
	cron     *cron.Cron
	expirer  Expirer
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewExpirySweeper creates a sweeper running on a standard cron spec or @every descriptor
func NewExpirySweeper(expirer Expirer, schedule string, timeout time.Duration, logger *zap.Logger) *ExpirySweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &ExpirySweeper{
		cron:     cron.New(cron.WithParser(parser)),
		expirer:  expirer,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger.With(zap.String("job", expirySweepJob)),
	}
}

// Start registers the job and starts the scheduler
func (s *ExpirySweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid sweeper schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("expiry sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish
func (s *ExpirySweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("expiry sweeper stopped")
}

// RunOnce performs a single sweep
func (s *ExpirySweeper) RunOnce(parent context.Context) int64 {
	ctx, cancel := jobcontext.Begin(parent, expirySweepJob, s.timeout)
	defer cancel()

	var expired int64
	err := jobcontext.Run(ctx, jobcontext.DefaultOptions(), func(ctx context.Context) error {
		n, err := s.expirer.ExpireDue(ctx)
		if err != nil {
			return err
		}
		expired = n
		return nil
	})

	meta := jobcontext.GetJobMetadata(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed",
			zap.String("job_id", meta.JobID.String()),
			zap.Error(err),
		)
		return 0
	}

	s.logger.Debug("expiry sweep finished",
		zap.String("job_id", meta.JobID.String()),
		zap.Int64("expired", expired),
		zap.Duration("took", time.Since(meta.StartTime)),
	)
	return expired
}
