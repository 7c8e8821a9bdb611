package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	harukiLogger "hallin-site/utils/logger"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 500 * time.Millisecond

// Watch reloads the store whenever a post or author file changes under the
// content directory. Rapid saves are coalesced into one reload. It blocks
// until ctx is done. onReload, when set, runs after every successful reload.
func (s *Store) Watch(ctx context.Context, logger *harukiLogger.Logger, debounce time.Duration, onReload func()) error {
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	_ = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			logger.Warnf("content watcher: cannot watch %s: %v", path, err)
		}
		return nil
	})

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
				_ = watcher.Add(event.Name)
			}
			if !isContentFile(event.Name) || event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("content watcher error: %v", err)
		case <-timer.C:
			if err := s.Reload(); err != nil {
				logger.Errorf("content reload failed, keeping previous collection: %v", err)
				continue
			}
			logger.Infof("content reloaded: %d posts, %d authors", len(s.Posts()), len(s.Authors()))
			if onReload != nil {
				onReload()
			}
		}
	}
}

func isContentFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".mdx" || ext == ".json"
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
