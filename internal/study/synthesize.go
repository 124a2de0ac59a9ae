package study

import (
	"context"
	"fmt"
)

const packetPrompt = `You are an academic study assistant.

From the lecture notes below, write a study packet with exactly these four sections, each introduced by its markdown heading:

## Summary
A clear, student-friendly summary of the lecture in 7-8 lines.

## Key Topics
15-20 meaningful academic key topics (concepts, not objects), one bullet each.

## Quiz Questions
%d conceptual quiz questions, numbered.

## Flashcards
%d flashcards in Q&A format, each written as "Q: ..." on one line and "A: ..." on the next.

Lecture notes:
%s
`

// BuildPrompt renders the packet instruction for the given counts.
func BuildPrompt(combined string, counts Counts) string {
	return fmt.Sprintf(packetPrompt, counts.QuizQuestions, counts.Flashcards, combined)
}

// Synthesize issues exactly one generation request. The response is kept
// verbatim in Raw; Sections is derived from it without altering Raw.
func (s *implSynthesizer) Synthesize(ctx context.Context, combined string, counts Counts) (*Material, error) {
	s.logger.Info(ctx, "Generating study packet (%d quiz questions, %d flashcards)", counts.QuizQuestions, counts.Flashcards)

	raw, err := s.generator.Generate(ctx, BuildPrompt(combined, counts), s.temperature)
	if err != nil {
		return nil, fmt.Errorf("synthesize study material: %w", err)
	}

	m := &Material{Raw: raw, Sections: Parse(raw)}
	if m.Sections == (Sections{}) {
		s.logger.Warn(ctx, "Study packet has no recognizable sections, showing raw text")
	}
	return m, nil
}
