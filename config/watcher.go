package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/tierpick/complexity"
)

// Watcher keeps an analyzer in sync with a config file.
// Current is safe to call from any goroutine.
type Watcher struct {
	path     string
	logger   *slog.Logger
	lookup   LookupFunc
	onChange func(*complexity.Analyzer)

	current atomic.Pointer[complexity.Analyzer]

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger used for reload events.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithEnv overlays environment variables on every load.
func WithEnv(lookup LookupFunc) WatcherOption {
	return func(w *Watcher) {
		w.lookup = lookup
	}
}

// WithOnChange registers a callback invoked with each newly published
// analyzer. It runs on the watcher goroutine.
func WithOnChange(fn func(*complexity.Analyzer)) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// NewWatcher loads path and starts watching its directory. The initial
// load must succeed.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:   filepath.Clean(path),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	a, err := w.load()
	if err != nil {
		return nil, err
	}
	w.current.Store(a)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Watch the directory; editors often replace the file rather than write it.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = fw

	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Current returns the most recently published analyzer.
func (w *Watcher) Current() *complexity.Analyzer {
	return w.current.Load()
}

// Reload loads the file now. On failure the current analyzer is kept and
// the error returned.
func (w *Watcher) Reload() error {
	a, err := w.load()
	if err != nil {
		return err
	}
	w.current.Store(a)

	cfg := a.Config()
	w.logger.Info("config reloaded",
		slog.String("path", w.path),
		slog.Float64("haiku_max", cfg.Thresholds.HaikuMax),
		slog.Float64("sonnet_max", cfg.Thresholds.SonnetMax),
		slog.String("default_model", cfg.DefaultModel.String()),
		slog.Bool("cost_optimization", cfg.CostOptimization),
	)

	if w.onChange != nil {
		w.onChange(a)
	}
	return nil
}

// Run processes file events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	fw := w.watcher
	w.mu.Unlock()
	if fw == nil {
		return fmt.Errorf("watcher closed")
	}

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.logger.Warn("config reload failed; keeping previous config",
					slog.String("path", w.path),
					slog.String("error", err.Error()),
				)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", slog.String("error", err.Error()))
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) load() (*complexity.Analyzer, error) {
	cfg, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	if w.lookup != nil {
		if cfg, err = ApplyEnv(cfg, w.lookup); err != nil {
			return nil, err
		}
	}
	return complexity.NewAnalyzer(cfg)
}
