package summarizer

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type Options struct {
	// Concurrency bounds in-flight generation calls. 1 means sequential.
	Concurrency int
	Temperature float64
}

type implSummarizer struct {
	generator   llm.TextGenerator
	logger      logger.Logger
	concurrency int
	temperature float64
}

// New creates a Summarizer backed by the given text generator.
func New(gen llm.TextGenerator, opts Options, log logger.Logger) Summarizer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &implSummarizer{
		generator:   gen,
		logger:      log,
		concurrency: opts.Concurrency,
		temperature: opts.Temperature,
	}
}
