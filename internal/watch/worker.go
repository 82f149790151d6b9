package watch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"git.home.luguber.info/inful/showcase/internal/logfields"
)

// RebuildFunc performs one rebuild.
type RebuildFunc func(ctx context.Context) error

// Worker runs rebuilds one at a time. Requests arriving while a rebuild runs
// collapse into a single follow-up rebuild.
type Worker struct {
	rebuild  RebuildFunc
	requests chan struct{}
	logger   *slog.Logger
	running  atomic.Bool
	runs     atomic.Int64
}

// NewWorker returns a worker for rebuild.
func NewWorker(rebuild RebuildFunc, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		rebuild:  rebuild,
		requests: make(chan struct{}, 1),
		logger:   logger,
	}
}

// Request schedules a rebuild without blocking.
func (w *Worker) Request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// Running reports whether a rebuild is in progress.
func (w *Worker) Running() bool { return w.running.Load() }

// Runs returns the number of rebuilds started.
func (w *Worker) Runs() int64 { return w.runs.Load() }

// Run processes requests until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
			w.running.Store(true)
			w.runs.Add(1)
			w.logger.Info("Change detected; rebuilding site")
			if err := w.rebuild(ctx); err != nil {
				w.logger.Warn("Rebuild failed", logfields.Error(err))
			}
			w.running.Store(false)
		}
	}
}
