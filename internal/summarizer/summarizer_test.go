package summarizer

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
	"github.com/nguyentantai21042004/lecture-notes/internal/llm"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

func makeChunks(t *testing.T, n int) []chunker.Chunk {
	t.Helper()
	var b strings.Builder
	for i := range n {
		b.WriteByte(byte('a' + i))
	}
	chunks, err := chunker.Split(b.String(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return chunks
}

// echo answers with the chunk text found between the prompt fences.
func echo(prompt string) string {
	_, after, _ := strings.Cut(prompt, "---\n")
	text, _, _ := strings.Cut(after, "\n---")
	return "summary of " + text
}

func TestSummarizer_Sequential(t *testing.T) {
	mock := &llm.Mock{Respond: echo}
	s := New(mock, Options{Concurrency: 1, Temperature: 0.3}, logger.New("error"))

	var progress []int
	got, err := s.Summarize(context.Background(), makeChunks(t, 3), func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		progress = append(progress, done)
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	want := []string{"summary of a", "summary of b", "summary of c"}
	for i, cs := range got {
		if cs.Index != i || cs.Text != want[i] {
			t.Errorf("summary %d = %+v, want %q", i, cs, want[i])
		}
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v", progress)
	}

	prompts := mock.Prompts()
	if len(prompts) != 3 || !strings.Contains(prompts[0], "3-4") {
		t.Errorf("unexpected prompts %q", prompts)
	}
	for _, temp := range mock.Temperatures() {
		if temp != 0.3 {
			t.Errorf("temperature = %v, want 0.3", temp)
		}
	}
}

func TestSummarizer_ConcurrentPreservesOrder(t *testing.T) {
	mock := &llm.Mock{Respond: func(prompt string) string {
		time.Sleep(time.Duration(rand.IntN(5)) * time.Millisecond)
		return echo(prompt)
	}}
	s := New(mock, Options{Concurrency: 4}, logger.New("error"))

	chunks := makeChunks(t, 12)

	var mu sync.Mutex
	calls := 0
	got, err := s.Summarize(context.Background(), chunks, func(done, total int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if len(got) != len(chunks) {
		t.Fatalf("got %d summaries, want %d", len(got), len(chunks))
	}
	for i, cs := range got {
		if cs.Index != i || cs.Text != "summary of "+chunks[i].Text {
			t.Errorf("summary %d out of order: %+v", i, cs)
		}
	}
	if calls != len(chunks) {
		t.Errorf("progress callbacks = %d, want %d", calls, len(chunks))
	}
}

func TestSummarizer_FailureIsFatal(t *testing.T) {
	mock := &llm.Mock{Response: "ok", Error: errors.New("quota"), FailOnCall: 2}
	s := New(mock, Options{Concurrency: 1}, logger.New("error"))

	got, err := s.Summarize(context.Background(), makeChunks(t, 5), nil)
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Fatalf("Summarize() error = %v, want ErrGenerationFailed", err)
	}
	if got != nil {
		t.Errorf("expected no partial result, got %d summaries", len(got))
	}
	if mock.Calls() != 2 {
		t.Errorf("calls = %d, want 2 (no calls after the failure)", mock.Calls())
	}
}

func TestSummarizer_NoChunks(t *testing.T) {
	mock := llm.NewMock("unused")
	s := New(mock, Options{}, logger.New("error"))

	got, err := s.Summarize(context.Background(), nil, nil)
	if err != nil || got != nil {
		t.Errorf("Summarize(nil) = %v, %v", got, err)
	}
	if mock.Calls() != 0 {
		t.Errorf("calls = %d, want 0", mock.Calls())
	}
}

func TestCombine(t *testing.T) {
	got := Combine([]ChunkSummary{{0, "First part."}, {1, "Second part."}, {2, "Third."}})
	if got != "First part. Second part. Third." {
		t.Errorf("Combine() = %q", got)
	}
	if Combine(nil) != "" {
		t.Error("Combine(nil) should be empty")
	}
}
