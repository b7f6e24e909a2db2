package labels

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a label override file into a Formatter whenever it changes
type Watcher struct {
	path      string
	formatter *Formatter
	log       *zap.Logger
	watcher   *fsnotify.Watcher
	onReload  func(overrides int)
}

// NewWatcher loads path into formatter once and prepares to follow changes.
// The parent directory is watched so editors that replace the file are seen.
func NewWatcher(path string, formatter *Formatter, log *zap.Logger) (*Watcher, error) {
	overrides, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	formatter.SetOverrides(overrides)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &Watcher{
		path:      filepath.Clean(path),
		formatter: formatter,
		log:       log,
		watcher:   fw,
	}, nil
}

// OnReload registers fn to be called after every successful reload.
// Must be called before Run.
func (w *Watcher) OnReload(fn func(overrides int)) {
	w.onReload = fn
}

// Run follows file events until ctx is cancelled, then releases the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Label file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	overrides, err := LoadFile(w.path)
	if err != nil {
		// Keep serving the previous table
		w.log.Warn("Failed to reload labels", zap.String("path", w.path), zap.Error(err))
	} else {
		w.formatter.SetOverrides(overrides)
		w.log.Info("Reloaded labels", zap.String("path", w.path), zap.Int("overrides", len(overrides)))
		if w.onReload != nil {
			w.onReload(len(overrides))
		}
	}
}
