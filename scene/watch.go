package scene

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the scene file at path each time it changes and passes the
// new scene to onChange. A file that fails to load is logged at warn level
// and skipped, so the caller keeps drawing the previous scene.
//
// Watch blocks until ctx is done and then returns nil. A nil logger
// discards all messages.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Scene)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("scene: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scene: watch %s: %w", path, err)
	}
	defer func() { _ = w.Close() }()

	// Watch the directory: editors often save by writing a temporary file
	// and renaming it over the original.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("scene: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s, err := Load(abs)
			if err != nil {
				logger.Warn("scene reload failed, keeping previous scene", "path", path, "err", err)
				continue
			}
			logger.Info("scene reloaded", "path", path, "bodies", len(s.Bodies()))
			onChange(s)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("scene watcher error", "path", path, "err", err)
		}
	}
}
