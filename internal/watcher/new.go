package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

const defaultDebounce = 2 * time.Second

// New watches the directory holding path, since editors often replace the
// file instead of writing it in place. Runs never overlap.
func New(path string, handler Handler, log logger.Logger, debounce time.Duration) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &implWatcher{
		path:     abs,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		debounce: debounce,
		trigger:  make(chan struct{}, 1),
	}, nil
}
