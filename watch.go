// FILE: lixenwraith/translog/watch.go
package translog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay lets editors finish writing before the file is read
const reloadDelay = 50 * time.Millisecond

// WatchConfig reloads level and disabled state from path whenever the file
// changes, until ctx is done. The reloaded level is applied to the logger and
// to every shared transport. The disabled flag also reaches transports whose
// enabled state was inherited from a logger. Transports are not rebuilt.
// The parent directory is watched so atomic replacements are seen.
func (l *Logger) WatchConfig(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmtErrorf("cannot watch config file %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmtErrorf("failed to create config file watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return fmtErrorf("failed to resolve config path %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return fmtErrorf("failed to watch config directory: %w", err)
	}

	go l.watchLoop(ctx, watcher, absPath)
	return nil
}

func (l *Logger) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string) {
	defer func() {
		if err := watcher.Close(); err != nil {
			internalLog(l.errOut, "failed to close config file watcher: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// React to write, create, rename and remove events (editors often use atomic writes)
			if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
				continue
			}

			time.Sleep(reloadDelay)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				// Removed and not replaced, keep the current settings
				continue
			}
			if err := l.reloadConfig(path); err != nil {
				internalLog(l.errOut, "failed to reload configuration after file change: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			internalLog(l.errOut, "config file watcher error: %v", err)
		}
	}
}

// reloadConfig applies the runtime-adjustable settings of the file
func (l *Logger) reloadConfig(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	l.SetLevel(level)
	l.manager.SetLevel(level)
	l.SetDisabled(cfg.Disabled)
	for _, t := range l.manager.All() {
		t.refreshInjectedEnabled(!cfg.Disabled)
	}
	return nil
}
