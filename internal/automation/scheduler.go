package automation

import (
	"context"
	"sync"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/config"

	"go.uber.org/zap"
)

// Scheduler runs the reminder and periodic report loops concurrently under
// one parent context. Each loop fires once immediately, then on a fixed
// interval floored at one minute. Iteration failures are logged and never
// stop a loop; context cancellation shuts both down between iterations.
type Scheduler struct {
	workflow *Workflow
	cfg      config.AutomationConfig
	logger   *zap.Logger
}

func NewScheduler(workflow *Workflow, cfg config.AutomationConfig, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("automation.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("automation.scheduler")
	}
	return &Scheduler{workflow: workflow, cfg: cfg, logger: l}
}

// Run blocks until ctx is cancelled and both loops have exited.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("automation scheduler disabled by configuration")
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.runLoop(ctx, "reminder", s.cfg.ReminderIntervalMinutes, s.workflow.RunReminderOnce)
	}()
	go func() {
		defer wg.Done()
		s.runLoop(ctx, "report", s.cfg.ReportIntervalMinutes, s.workflow.RunPeriodicReportOnce)
	}()

	wg.Wait()
	s.logger.Info("automation scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, name string, intervalMinutes int, run func(context.Context) error) {
	s.runOnce(ctx, name, run)

	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	s.logger.Info("automation loop started",
		zap.String("job", name),
		zap.Int("interval_minutes", intervalMinutes),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("automation loop stopped", zap.String("job", name))
			return
		case <-ticker.C:
			s.runOnce(ctx, name, run)
		}
	}
}

// runOnce isolates one iteration: a panic or error is logged and the loop
// carries on. Cancellation mid-iteration is a graceful shutdown, not a
// failure.
func (s *Scheduler) runOnce(ctx context.Context, name string, run func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("automation iteration panicked",
				zap.String("job", name),
				zap.Any("panic", r),
			)
		}
	}()

	if err := run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("automation iteration failed",
			zap.String("job", name),
			zap.Error(err),
		)
	}
}
