package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// lectureHandler runs dropped recordings through the pipeline.
type lectureHandler struct {
	proc   processor.Processor
	paths  config.PathsConfig
	logger logger.Logger
}

// NewLectureHandler returns an EventHandler that processes an audio file,
// writes its study packet to paths.output and archives the source.
// A failed file stays in the input folder.
func NewLectureHandler(proc processor.Processor, paths config.PathsConfig, log logger.Logger) EventHandler {
	h := &lectureHandler{proc: proc, paths: paths, logger: log}
	return h.handle
}

func (h *lectureHandler) handle(ctx context.Context, audioPath string) error {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", audioPath, err)
	}

	filename := filepath.Base(audioPath)
	res, err := h.proc.Process(ctx, processor.Request{Filename: filename, Audio: data})
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	files, err := export.WriteFiles(h.paths.Output, base, export.Document{
		Title:      base,
		Transcript: res.Transcript,
		Material:   res.Material,
		Generated:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", filename, err)
	}
	h.logger.Info(ctx, "Study packet written: %s, %s", files.Markdown, files.Packet)

	return h.moveToArchived(ctx, audioPath)
}

// moveToArchived moves the source recording out of the input folder
func (h *lectureHandler) moveToArchived(ctx context.Context, audioPath string) error {
	if err := os.MkdirAll(h.paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	destPath := filepath.Join(h.paths.Archived, filepath.Base(audioPath))
	if _, err := os.Stat(destPath); err == nil {
		destPath = filepath.Join(h.paths.Archived, fmt.Sprintf("%d-%s", time.Now().Unix(), filepath.Base(audioPath)))
	}

	h.logger.Info(ctx, "Moving to archive folder: %s -> %s", audioPath, destPath)

	if err := os.Rename(audioPath, destPath); err != nil {
		return fmt.Errorf("move to archive: %w", err)
	}
	return nil
}
