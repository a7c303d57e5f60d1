package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// ConfigWatcher reloads the configuration when the backing file changes and
// fans the new value out to registered callbacks. Callbacks run on their own
// goroutines; a panicking callback never takes the watcher down.
type ConfigWatcher struct {
	path   string
	logger logger.Logger

	mu        sync.RWMutex
	current   *Config
	callbacks []func(*Config)
}

func NewConfigWatcher(path string, log logger.Logger) *ConfigWatcher {
	return &ConfigWatcher{path: path, logger: log}
}

// RegisterWatcher adds a callback invoked after each successful reload.
func (w *ConfigWatcher) RegisterWatcher(cb func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Current returns the most recently reloaded configuration, nil before the
// first change event.
func (w *ConfigWatcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start blocks watching the config file until ctx is cancelled. A reload that
// fails validation is logged and skipped; the previous config stays active.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("configuration watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("configuration watcher error", "error", err)
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			w.reload(event.Name)
		}
	}
}

func (w *ConfigWatcher) reload(changed string) {
	updated, err := Load()
	if err != nil {
		w.logger.Error("configuration reload rejected", "file", changed, "error", err)
		return
	}

	w.mu.Lock()
	w.current = updated
	cbs := make([]func(*Config), len(w.callbacks))
	copy(cbs, w.callbacks)
	w.mu.Unlock()

	w.logger.Info("configuration reloaded", "file", changed)
	for _, cb := range cbs {
		go func(cb func(*Config)) {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("configuration callback panicked", "panic", r)
				}
			}()
			cb(updated)
		}(cb)
	}
}
