package llm

import (
	"context"
	"time"
)

// Instrumented records the latency of every call made through next.
type Instrumented struct {
	next  TextGenerator
	stats *Stats
}

func NewInstrumented(next TextGenerator, stats *Stats) *Instrumented {
	return &Instrumented{next: next, stats: stats}
}

func (i *Instrumented) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	start := time.Now()
	text, err := i.next.Generate(ctx, prompt, temperature)
	i.stats.Record(time.Since(start).Milliseconds(), err != nil)
	return text, err
}

func (i *Instrumented) Stats() *Stats {
	return i.stats
}
