package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"surgewatch/internal/logging"
)

// Runner is the periodic work the scheduler drives, one invocation per
// hospital id.
type Runner func(ctx context.Context, hospitalID string) error

// Scheduler triggers autonomous agent runs on a cron expression.
type Scheduler struct {
	cron        *cron.Cron
	hospitalIDs []string
	runner      Runner
	logger      *logging.Logger
}

func New(hospitalIDs []string, runner Runner, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		hospitalIDs: hospitalIDs,
		runner:      runner,
		logger:      logger,
	}
}

// Start registers the cron entry and starts the scheduler loop.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		for _, id := range s.hospitalIDs {
			if err := s.runner(ctx, id); err != nil {
				s.logger.Errorf("scheduled agent run for %s failed: %v", id, err)
				continue
			}
			s.logger.Infof("scheduled agent run for %s completed", id)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Infof("agent scheduler started with spec %q", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
