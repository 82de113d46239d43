package watcher

import "context"

// Watcher re-runs a handler whenever the watched file changes.
type Watcher interface {
	Start(ctx context.Context) error
	// Trigger queues a run without a file change. A run already queued
	// absorbs it. Safe to call before Start.
	Trigger()
	Stop() error
}

// Handler is called once per settled change of the watched file.
type Handler func(ctx context.Context) error
