package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/ingest"
	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

const statsWindow = time.Hour

// buildProcessor wires the pipeline stages from config. The returned stats
// record every text generation call.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, *llm.Stats, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, nil, err
	}

	store, err := ingest.NewFileStore(cfg.Paths.Temp, log)
	if err != nil {
		return nil, nil, err
	}

	tr, err := transcriber.New(cfg, executor.New(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("create transcriber: %w", err)
	}

	gen, err := llm.New(cfg.LLM, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create text generator: %w", err)
	}
	stats := llm.NewStats(statsWindow)
	gen = llm.NewInstrumented(gen, stats)

	proc := processor.New(cfg, processor.Deps{
		Store:       store,
		Transcriber: tr,
		Summarizer: summarizer.New(gen, summarizer.Options{
			Concurrency: cfg.Summarizer.Concurrency,
			Temperature: cfg.LLM.SummaryTemperature,
		}, log),
		Synthesizer: study.New(gen, cfg.LLM.StudyTemperature, log),
	}, log)

	return proc, stats, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Temp,
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
