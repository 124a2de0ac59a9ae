package ingest

import (
	"context"
	"errors"
)

var (
	ErrEmptyPayload      = errors.New("audio payload is empty")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// Handle identifies one persisted upload until it is removed.
type Handle struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Format   Format `json:"format"`
	Size     int64  `json:"size"`
}

// Store persists uploaded audio for the lifetime of one request.
type Store interface {
	Save(ctx context.Context, filename string, data []byte) (Handle, error)
	Remove(h Handle) error
}
