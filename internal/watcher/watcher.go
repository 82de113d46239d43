package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

type implWatcher struct {
	path     string
	handler  Handler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	trigger  chan struct{}
}

func (w *implWatcher) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is cancelled. Changes that arrive during a run
// trigger exactly one more run afterwards.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.path)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.trigger:
				if err := w.handler(ctx); err != nil {
					w.logger.Error(ctx, "Run failed: %v", err)
				}
				w.logger.Info(ctx, "Waiting for changes to %s", filepath.Base(w.path))
			}
		}
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing run to complete...")
			<-done
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug(ctx, "Transcript changed: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info(ctx, "Transcript updated, starting run")
			w.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// relevant reports whether event is a write, create or rename of the
// watched file.
func (w *implWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
