package tui

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 200 * time.Millisecond

// Watch calls notify after files whose name starts with prefix change in
// dir, coalescing bursts of events. It returns when ctx is done.
func Watch(ctx context.Context, dir, prefix string, logger *slog.Logger, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasPrefix(filepath.Base(event.Name), prefix) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			name := event.Name
			timer = time.AfterFunc(debounce, func() {
				logger.Debug("store changed, reloading", "file", name)
				notify()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
