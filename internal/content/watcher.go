package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store whenever its backing file changes.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
	logger   *zap.Logger
	done     chan struct{}
	reloaded chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool
}

// NewWatcher watches the directory holding the store's file. Watching the
// directory survives editors that replace the file on save.
func NewWatcher(store *Store, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("content: nothing to watch for the embedded document")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(store.Path())
	if err != nil {
		return nil, fmt.Errorf("content: failed to resolve %s: %w", store.Path(), err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("content: failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("content: failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		store:    store,
		watcher:  fw,
		file:     filepath.Base(abs),
		debounce: debounce,
		logger:   logger,
		done:     make(chan struct{}),
		reloaded: make(chan struct{}, 1),
	}, nil
}

// Reloaded receives a value after each successful reload.
func (w *Watcher) Reloaded() <-chan struct{} { return w.reloaded }

// Run blocks until ctx is cancelled or the watcher is closed. It returns
// at once if the watcher is already closed or running.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	if w.closed || w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != w.file {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("Content file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Stop()
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.store.Reload(); err != nil {
				w.logger.Error("Failed to reload content", zap.Error(err))
				continue
			}
			select {
			case w.reloaded <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Content watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and waits for Run to return.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	running := w.running
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.done
	}
	return err
}
