package llm

import (
	"context"
	"errors"
)

var (
	// ErrGenerationFailed wraps any failure of the text-generation service.
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrInvalidConfig is returned when a generator cannot be constructed.
	ErrInvalidConfig = errors.New("invalid llm configuration")
)

// TextGenerator turns a prompt into text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
