// Package chunker splits a transcript into fixed-size, non-overlapping windows.
package chunker

import (
	"errors"
	"strings"
)

var ErrInvalidSize = errors.New("chunk size must be positive")

// Chunk is one window of the transcript. Start and End are rune offsets.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Split cuts transcript into consecutive windows of size runes. The last
// window may be shorter. An empty transcript yields no chunks.
func Split(transcript string, size int) ([]Chunk, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if transcript == "" {
		return nil, nil
	}

	runes := []rune(transcript)
	chunks := make([]Chunk, 0, Count(len(runes), size))

	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
		})
	}

	return chunks, nil
}

// Count returns how many chunks Split produces for a transcript of n runes.
func Count(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Join concatenates chunk texts in order, reconstructing the transcript.
func Join(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}
