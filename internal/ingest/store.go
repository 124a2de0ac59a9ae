package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save checks the payload and writes it to a uniquely named temp file.
func (s *FileStore) Save(ctx context.Context, filename string, data []byte) (Handle, error) {
	if len(data) == 0 {
		return Handle{}, ErrEmptyPayload
	}

	format, err := Sniff(data)
	if err != nil {
		return Handle{}, err
	}

	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}

	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "lecture"
	}

	f, err := os.CreateTemp(s.dir, base+"-*."+string(format))
	if err != nil {
		return Handle{}, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		s.discard(ctx, path)
		return Handle{}, fmt.Errorf("write audio: %w", err)
	}
	if err := f.Close(); err != nil {
		s.discard(ctx, path)
		return Handle{}, fmt.Errorf("close audio: %w", err)
	}

	s.logger.Debug(ctx, "Saved upload %s (%d bytes) to %s", filename, len(data), path)

	return Handle{
		Path:     path,
		Filename: filename,
		Format:   format,
		Size:     int64(len(data)),
	}, nil
}

// Remove deletes the persisted audio. Removing a missing file is not an error.
func (s *FileStore) Remove(h Handle) error {
	if h.Path == "" {
		return nil
	}
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", h.Path, err)
	}
	return nil
}

func (s *FileStore) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to remove partial upload %s: %v", path, err)
	}
}
