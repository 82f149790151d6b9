package watch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// startPeriodic runs task every interval on a gocron scheduler until the
// returned stop function is called. A run that overlaps the previous one is
// skipped rather than queued.
func startPeriodic(name string, interval time.Duration, task func(), logger *slog.Logger) (stop func(), err error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%s: interval must be positive, got %s", name, interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("%s: create scheduler: %w", name, err)
	}
	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("%s: schedule: %w", name, err)
	}

	s.Start()
	logger.Debug("Periodic job started", slog.String("job", name), slog.Duration("interval", interval))
	return func() {
		if err := s.Shutdown(); err != nil {
			logger.Warn("Periodic job shutdown failed", slog.String("job", name), slog.String("error", err.Error()))
		}
	}, nil
}
