package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/haryoiro/orderdesk/internal/constants"
	"github.com/haryoiro/orderdesk/internal/logger"
	"github.com/haryoiro/orderdesk/internal/structures"
)

// Watch calls fn with every reloaded version of the config at path until
// ctx is done. Reload errors are logged and the previous config stays active.
func Watch(ctx context.Context, path string, fn func(*structures.Config)) error {
	w, err := NewWatcher(path, constants.ConfigReloadDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange = fn
	w.OnError = func(err error) {
		logger.Warn("config reload failed: %v", err)
	}
	w.Run(ctx)
	return nil
}

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnChange receives every successfully reloaded config.
	OnChange func(*structures.Config)
	// OnError receives load and watch errors; the previous config stays active.
	OnError func(error)
}

// NewWatcher watches the directory holding path, since editors usually
// replace the file instead of writing it in place.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		watcher:  w,
	}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Stop()
			timer.Reset(w.debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
		}
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.reportError(err)
		return
	}
	if w.OnChange != nil {
		w.OnChange(cfg)
	}
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
