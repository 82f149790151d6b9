package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "git.home.luguber.info/inful/showcase/internal/foundation/errors"
	"git.home.luguber.info/inful/showcase/internal/logfields"
)

// Trigger reasons passed to Options.OnTrigger.
const (
	ReasonChange = "change"
	ReasonRescan = "rescan"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// RescanInterval re-walks the watched trees periodically; 0 disables it.
	RescanInterval time.Duration
	// Exclude lists directories whose changes are ignored, such as an output
	// directory nested inside a watched tree.
	Exclude []string
	Logger  *slog.Logger
	// OnTrigger is called for every accepted rebuild trigger.
	OnTrigger func(reason string)
}

// Watcher rebuilds when files under its roots change.
type Watcher struct {
	fs        *fsnotify.Watcher
	roots     []string
	opts      Options
	logger    *slog.Logger
	worker    *Worker
	debouncer *Debouncer

	mu      sync.Mutex
	watched map[string]struct{}
}

// New creates a watcher over roots. Missing roots are skipped with a warning.
func New(roots []string, rebuild RebuildFunc, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryWatch, "failed to create file watcher").Build()
	}

	w := &Watcher{
		fs:      fsw,
		opts:    opts,
		logger:  logger,
		worker:  NewWorker(rebuild, logger),
		watched: make(map[string]struct{}),
	}
	w.debouncer = NewDebouncer(opts.Debounce, w.worker.Request)
	w.opts.Exclude = make([]string, 0, len(opts.Exclude))
	for _, ex := range opts.Exclude {
		if abs, err := filepath.Abs(ex); err == nil {
			w.opts.Exclude = append(w.opts.Exclude, abs)
		}
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve watch root %s: %w", root, err)
		}
		if st, err := os.Stat(abs); err != nil || !st.IsDir() {
			logger.Warn("Watch root is not a directory; skipping", logfields.Path(abs))
			continue
		}
		w.roots = append(w.roots, abs)
		w.addRecursive(abs)
	}
	if len(w.roots) == 0 {
		_ = fsw.Close()
		return nil, derrors.WatchError("no directories to watch").Build()
	}
	return w, nil
}

// Roots returns the absolute directories being watched.
func (w *Watcher) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Worker returns the rebuild worker.
func (w *Watcher) Worker() *Worker { return w.worker }

// Trigger requests a debounced rebuild.
func (w *Watcher) Trigger(reason string) {
	if w.opts.OnTrigger != nil {
		w.opts.OnTrigger(reason)
	}
	w.debouncer.Trigger()
}

// Run dispatches filesystem events until ctx is done, then waits for any
// in-flight rebuild and releases the watcher. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()
	defer w.debouncer.Stop()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker.Run(ctx)
	}()
	defer wg.Wait()
	defer cancel()

	if w.opts.RescanInterval > 0 {
		stop, err := startPeriodic("rescan", w.opts.RescanInterval, w.rescan, w.logger)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryWatch, "failed to schedule rescans").Build()
		}
		defer stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ShouldIgnore(ev.Name) || w.excluded(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addRecursive(ev.Name)
		}
	}
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.forget(ev.Name)
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
	w.Trigger(ReasonChange)
}

// rescan re-adds every directory under the roots and triggers a rebuild
// when new ones appeared.
func (w *Watcher) rescan() {
	added := 0
	for _, root := range w.roots {
		added += w.addRecursive(root)
	}
	if added > 0 {
		w.logger.Info("Rescan found new directories", logfields.Count(added))
		w.Trigger(ReasonRescan)
	}
}

// addRecursive watches root and every directory below it and returns how
// many directories were newly added.
func (w *Watcher) addRecursive(root string) int {
	added := 0
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (ShouldIgnore(path) || w.excluded(path)) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		_, seen := w.watched[path]
		w.mu.Unlock()
		if seen {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			return nil
		}
		w.mu.Lock()
		w.watched[path] = struct{}{}
		w.mu.Unlock()
		added++
		return nil
	})
	return added
}

func (w *Watcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p := range w.watched {
		if within(p, path) {
			delete(w.watched, p)
		}
	}
}

func (w *Watcher) excluded(path string) bool {
	for _, ex := range w.opts.Exclude {
		if within(path, ex) {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
