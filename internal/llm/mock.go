package llm

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a deterministic TextGenerator for tests. It is safe for
// concurrent use.
type Mock struct {
	// Response is the fixed text returned by Generate. If empty and
	// Respond is nil, a response echoing the call number is returned.
	Response string

	// Respond, if set, computes the response from the prompt.
	Respond func(prompt string) string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// FailOnCall makes only the n-th call (1-based) return Error.
	FailOnCall int

	mu           sync.Mutex
	prompts      []string
	temperatures []float64
}

func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

func NewMockWithError(err error) *Mock {
	return &Mock{Error: err}
}

func (m *Mock) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.temperatures = append(m.temperatures, temperature)
	n := len(m.prompts)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if m.Error != nil && (m.FailOnCall == 0 || m.FailOnCall == n) {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, m.Error)
	}

	if m.Respond != nil {
		return m.Respond(prompt), nil
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("response %d", n), nil
}

// Calls returns how many times Generate was invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of every prompt received, in call order.
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *Mock) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Temperatures returns the temperature of every call, in call order.
func (m *Mock) Temperatures() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.temperatures...)
}
