package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process recordings dropped into the input folder",
	Long: `watch monitors paths.input for new .wav and .mp3 files. Each recording is
processed into <name>.md, <name>.docx and <name>-transcript.docx under
paths.output and then moved to paths.archived.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc, _, err := buildProcessor(cfg, log)
	if err != nil {
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, watcher.NewLectureHandler(proc, cfg.Paths, log), log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(context.Background(), "Lecture watcher stopped")
	return nil
}
