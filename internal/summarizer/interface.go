package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
)

// ChunkSummary is the generated summary of one transcript chunk.
type ChunkSummary struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ProgressFunc is called after each chunk summary completes.
type ProgressFunc func(done, total int)

// Summarizer produces one summary per chunk, preserving chunk order.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []chunker.Chunk, onDone ProgressFunc) ([]ChunkSummary, error)
}
