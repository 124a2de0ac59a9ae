package processor

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
)

// ErrNoSpeech is returned when transcription yields no text.
var ErrNoSpeech = errors.New("no speech found in audio")

type Stage string

const (
	StageIngest     Stage = "ingest"
	StageTranscribe Stage = "transcribe"
	StageChunk      Stage = "chunk"
	StageSummarize  Stage = "summarize"
	StageSynthesize Stage = "synthesize"
	StageDone       Stage = "done"
)

// Request is one lecture to process. Zero-valued settings fall back to
// configured defaults.
type Request struct {
	Filename  string
	Audio     []byte
	ChunkSize int
	Counts    study.Counts
	Model     string
	Language  string

	// Observer, if set, receives progress for this request.
	Observer Observer
}

// Result holds every output produced so far. It is returned alongside a
// failure so earlier stages stay visible.
type Result struct {
	Transcript string                    `json:"transcript"`
	Chunks     []chunker.Chunk           `json:"chunks"`
	Summaries  []summarizer.ChunkSummary `json:"summaries"`
	Combined   string                    `json:"combined"`
	Material   *study.Material           `json:"material,omitempty"`
	Duration   time.Duration             `json:"duration"`
}

// Observer receives stage transitions and per-chunk progress. ChunkDone may
// be called from several goroutines when summaries run concurrently.
type Observer interface {
	StageStarted(ctx context.Context, stage Stage)
	ChunkDone(ctx context.Context, done, total int)
}

// Processor runs the ingest, transcribe, chunk, summarize and synthesize pipeline.
type Processor interface {
	Process(ctx context.Context, req Request) (*Result, error)
}
