// Package watcher re-runs generation when ITL inputs change.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/logger"
)

// Defaults for New.
const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultRunsPerMinute = 30
)

// RunFunc performs one generation run.
type RunFunc func(ctx context.Context) error

// Watcher watches a set of input files. Runs are debounced, rate limited
// and never overlap.
type Watcher struct {
	inputs   map[string]bool
	fsw      *fsnotify.Watcher
	run      RunFunc
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	timer *time.Timer
	runMu sync.Mutex
	ctx   context.Context
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the inputs must be quiet before a run.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithRunsPerMinute caps how often generation runs.
func WithRunsPerMinute(n int) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
	}
}

// New watches the directories holding inputs. Watching directories rather
// than files keeps working when an editor replaces a file on save.
func New(inputs []string, run RunFunc, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		inputs:   make(map[string]bool, len(inputs)),
		fsw:      fsw,
		run:      run,
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Limit(float64(DefaultRunsPerMinute)/60.0), 1),
		logger:   logger.ComponentLogger("watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.limiter.Limit() <= 0 {
		fsw.Close()
		return nil, errors.Newf("runs per minute must be positive, got %v", float64(w.limiter.Limit())*60)
	}
	if w.debounce < 0 {
		fsw.Close()
		return nil, errors.Newf("debounce must not be negative, got %s", w.debounce)
	}

	dirs := make(map[string]bool)
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", input)
		}
		w.inputs[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	return w, nil
}

// Run blocks until ctx is done, running generation once up front and then
// after every change.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	w.generate()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("input changed",
				logger.FieldFile, event.Name,
				logger.FieldOp, event.Op.String())
			w.schedule()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watch error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.inputs[abs]
}

// schedule debounces bursts of events into one run.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.generate)
}

func (w *Watcher) generate() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	if !w.limiter.Allow() {
		w.logger.Infow("rate limited, retrying", logger.FieldReason, "too many runs per minute")
		w.schedule()
		return
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()

	started := time.Now()
	if err := w.run(ctx); err != nil {
		w.logger.Errorw("generation failed", logger.FieldError, err)
		return
	}
	w.logger.Infow("generation finished",
		logger.FieldDurationMS, time.Since(started).Milliseconds())
}
