package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/roving/pkg/logging"
)

const reloadDebounce = 100 * time.Millisecond

// watchConfig calls onChange after any of paths is written, created,
// renamed or removed, collapsing bursts of events into one call. Parent
// directories are watched so files that do not exist yet are picked up once
// created.
func watchConfig(ctx context.Context, paths []string, logger *logging.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = logger.Warn(logging.CategoryConfig, "watch_failed", err.Error(), map[string]any{"dir": dir})
		}
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)

		case <-debounce.C:
			_ = logger.Info(logging.CategoryConfig, "config_changed", "reloading configuration", nil)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_ = logger.Warn(logging.CategoryConfig, "watch_error", err.Error(), nil)
		}
	}
}
