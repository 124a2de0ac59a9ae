package watcher

import "context"

// Watcher monitors a drop folder for new lecture recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one newly created audio file.
type EventHandler func(ctx context.Context, filePath string) error
