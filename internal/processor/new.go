package processor

import (
	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/ingest"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

// Deps are the collaborators a Processor drives.
type Deps struct {
	Store       ingest.Store
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Synthesizer study.Synthesizer
}

type implProcessor struct {
	cfg         *config.Config
	store       ingest.Store
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	synthesizer study.Synthesizer
	logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		store:       deps.Store,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		synthesizer: deps.Synthesizer,
		logger:      log,
	}
}
