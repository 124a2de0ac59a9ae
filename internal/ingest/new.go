package ingest

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type FileStore struct {
	dir    string
	logger logger.Logger
}

// NewFileStore creates a Store writing uploads under dir.
func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	return &FileStore{dir: dir, logger: log}, nil
}
