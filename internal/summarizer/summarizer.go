package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
	"golang.org/x/sync/errgroup"
)

const chunkPrompt = `Summarize the following part of a lecture in 3-4 clear, student-friendly lines.

Lecture text:
---
%s
---`

// Summarize issues one generation request per chunk. Any failure aborts the
// whole run and no partial result is returned.
func (s *implSummarizer) Summarize(ctx context.Context, chunks []chunker.Chunk, onDone ProgressFunc) ([]ChunkSummary, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	s.logger.Info(ctx, "Summarizing %d chunks (concurrency %d)", len(chunks), s.concurrency)

	results := make([]ChunkSummary, len(chunks))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, c := range chunks {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s.logger.Debug(gctx, "[%d/%d] Summarizing chunk (%d runes)", i+1, len(chunks), c.End-c.Start)

			text, err := s.generator.Generate(gctx, fmt.Sprintf(chunkPrompt, c.Text), s.temperature)
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", c.Index, err)
			}

			results[i] = ChunkSummary{Index: c.Index, Text: text}

			n := int(done.Add(1))
			if onDone != nil {
				onDone(n, len(chunks))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "Chunk summarization failed: %v", err)
		return nil, err
	}

	s.logger.Info(ctx, "Summarized %d chunks", len(results))
	return results, nil
}

// Combine joins summaries with a single space, in the order given.
func Combine(summaries []ChunkSummary) string {
	texts := make([]string, len(summaries))
	for i, s := range summaries {
		texts[i] = s.Text
	}
	return strings.Join(texts, " ")
}
