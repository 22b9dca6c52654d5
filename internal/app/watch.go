package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"github.com/specialistvlad/buildplan/internal/fsutil"
	"github.com/specialistvlad/buildplan/internal/hcl"
)

// watchDebounce collapses bursts of editor writes into one re-resolution.
const watchDebounce = 100 * time.Millisecond

// watch re-runs resolution whenever a project or dotenv file in the project
// directory changes. It returns when ctx is cancelled.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	dir := fsutil.ProjectDir(a.config.ProjectPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch project directory %s: %w", dir, err)
	}
	logger.Info("Watching project for changes.", "dir", dir)

	var timer *time.Timer
	var debounce <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Watcher stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isWatchedFile(event.Name) || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			logger.Debug("Project file changed.", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(watchDebounce)
			debounce = timer.C

		case <-debounce:
			debounce = nil
			if err := a.runOnce(ctx); err != nil {
				logger.Error("Re-resolution failed.", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error.", "error", err)
		}
	}
}

func isWatchedFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".env") || filepath.Ext(base) == hcl.Extension
}
