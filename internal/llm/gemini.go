package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("empty response from Gemini")

// Gemini generates text with the Gemini API, rotating through API keys
// when one is rate limited.
type Gemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger

	call func(ctx context.Context, key, prompt string, temperature float64) (string, error)
}

// NewGemini creates a Gemini generator over the supplied keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) (*Gemini, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("%w: missing API keys (set GEMINI_API_KEYS)", ErrInvalidConfig)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	g := &Gemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
	g.call = g.callGemini
	return g, nil
}

// Generate tries each key at most once, moving to the next on 429 / quota errors.
func (g *Gemini) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	var lastErr error

	for range len(g.apiKeys) {
		idx, key := g.key()

		text, err := g.call(ctx, key, prompt, temperature)
		if err == nil {
			return text, nil
		}

		if isRateLimited(err) {
			g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			g.rotateKey(idx)
			lastErr = err
			continue
		}
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return "", fmt.Errorf("%w: all API keys exhausted: %w", ErrGenerationFailed, lastErr)
}

func (g *Gemini) callGemini(ctx context.Context, key, prompt string, temperature float64) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temp := float32(temperature)
	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temp,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return text.String(), nil
	}

	return "", errEmptyResponse
}

func (g *Gemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another caller already has.
func (g *Gemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
