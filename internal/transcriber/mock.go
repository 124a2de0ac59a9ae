package transcriber

import (
	"context"
	"fmt"
	"sync"
)

// Mock returns a fixed transcript and records every call.
type Mock struct {
	Text  string
	Error error

	mu    sync.Mutex
	paths []string
	opts  []Options
}

func (m *Mock) Transcribe(ctx context.Context, audioPath string, opts Options) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, audioPath)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.Error != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, m.Error)
	}
	return m.Text, nil
}

func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}

func (m *Mock) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func (m *Mock) Options() []Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Options(nil), m.opts...)
}
