package study

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

func TestSynthesizer_SingleCallWithCounts(t *testing.T) {
	mock := llm.NewMock(wellFormed)
	s := New(mock, 0.3, logger.New("error"))

	m, err := s.Synthesize(context.Background(), "Summary one. Summary two.", Counts{QuizQuestions: 12, Flashcards: 7})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if mock.Calls() != 1 {
		t.Fatalf("calls = %d, want exactly 1", mock.Calls())
	}
	prompt := mock.LastPrompt()
	for _, want := range []string{"12 conceptual quiz questions", "7 flashcards", "Summary one. Summary two."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if m.Raw != wellFormed {
		t.Error("Raw must be the unmodified model output")
	}
	if m.Sections.Summary == "" {
		t.Error("expected parsed summary section")
	}
}

func TestSynthesizer_Failure(t *testing.T) {
	s := New(llm.NewMockWithError(errors.New("timeout")), 0.3, logger.New("error"))

	m, err := s.Synthesize(context.Background(), "x", Counts{QuizQuestions: 10, Flashcards: 10})
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Errorf("Synthesize() error = %v, want ErrGenerationFailed", err)
	}
	if m != nil {
		t.Error("expected no material on failure")
	}
}

func TestBuildPrompt_Headings(t *testing.T) {
	p := BuildPrompt("notes", Counts{QuizQuestions: 5, Flashcards: 5})
	for _, h := range []string{"## Summary", "## Key Topics", "## Quiz Questions", "## Flashcards"} {
		if !strings.Contains(p, h) {
			t.Errorf("prompt missing heading %q", h)
		}
	}
	if got := Parse(p); got.Summary == "" {
		t.Error("prompt headings should be recognized by Parse")
	}
}
