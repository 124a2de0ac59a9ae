package llm

import (
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

// New builds the generator selected by cfg.Provider.
func New(cfg config.LLMConfig, log logger.Logger) (TextGenerator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAI(OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
		})
	case config.ProviderGemini:
		return NewGemini(cfg.GeminiAPIKeys, cfg.Model, log)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
