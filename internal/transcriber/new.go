package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

// New builds the backend selected by cfg.Transcription.Backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcription.Backend {
	case config.BackendOpenAI, "":
		return NewOpenAI(OpenAIConfig{
			APIKey:  cfg.LLM.OpenAIAPIKey,
			Model:   cfg.Transcription.Model,
			BaseURL: cfg.LLM.BaseURL,
			Prompt:  cfg.Transcription.Prompt,
		}, log)
	case config.BackendWhisperCPP:
		return NewWhisperCPP(WhisperCPPConfig{
			BinaryPath: cfg.Transcription.BinaryPath,
			ModelsDir:  cfg.Transcription.ModelsDir,
			FFmpegPath: cfg.FFmpeg.BinaryPath,
			SampleRate: cfg.FFmpeg.SampleRate,
			Threads:    cfg.Transcription.Threads,
			Prompt:     cfg.Transcription.Prompt,
			TempDir:    cfg.Paths.Temp,
		}, exec, log), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Transcription.Backend)
	}
}
