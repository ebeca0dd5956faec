package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-reads the config snapshot whenever the backing file changes,
// standing in for a config-topic message in §6. Per §5 "Config change",
// the caller (internal/alerter.Manager) is responsible for stopping the
// affected child process, discarding its alerting state, and starting a
// replacement on each Changed delivery — the watcher itself only notices
// and reloads.
type Watcher struct {
	loader *Loader
	logger *zap.Logger
	fw     *fsnotify.Watcher
	path   string

	Changed chan Snapshot
}

// NewWatcher constructs a Watcher over the file loader.ConfigFile() that
// reloads via loader on every write/create event.
func NewWatcher(loader *Loader, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path := loader.ConfigFile()
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		loader:  loader,
		logger:  logger,
		fw:      fw,
		path:    path,
		Changed: make(chan Snapshot, 1),
	}, nil
}

// Run blocks, publishing a freshly-loaded Snapshot on Changed after each
// relevant filesystem event, until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			snap, err := w.loader.Load()
			if err != nil {
				w.logger.Error("config: reload failed",
					zap.String("path", w.path), zap.Error(err))
				continue
			}

			select {
			case w.Changed <- snap:
			default:
				// Drain the stale snapshot so the newest always wins.
				select {
				case <-w.Changed:
				default:
				}
				w.Changed <- snap
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config: watcher error", zap.Error(err))
		}
	}
}
