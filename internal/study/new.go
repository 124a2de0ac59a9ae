package study

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type implSynthesizer struct {
	generator   llm.TextGenerator
	logger      logger.Logger
	temperature float64
}

// New creates a Synthesizer that issues a single generation request per packet.
func New(gen llm.TextGenerator, temperature float64, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		generator:   gen,
		logger:      log,
		temperature: temperature,
	}
}
