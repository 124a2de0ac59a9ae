package processor

import (
	"context"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/chunker"
	"github.com/nguyentantai21042004/lecture-notes/internal/summarizer"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

// Process orchestrates the entire lecture pipeline. The uploaded audio is
// removed exactly once, whether or not a later stage fails.
func (p *implProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	req = p.withDefaults(req)
	res := &Result{}

	p.logger.Info(ctx, "Starting lecture processing: %s (%d bytes)", req.Filename, len(req.Audio))

	// Step 1: Persist the upload
	p.stage(ctx, req, StageIngest)
	handle, err := p.store.Save(ctx, req.Filename, req.Audio)
	if err != nil {
		return res, p.fail(ctx, StageIngest, err)
	}
	defer p.cleanupAudio(ctx, handle)

	// Step 2: Transcribe
	p.stage(ctx, req, StageTranscribe)
	transcript, err := p.transcriber.Transcribe(ctx, handle.Path, transcriber.Options{
		Language: req.Language,
		Model:    req.Model,
		FP16:     p.cfg.Transcription.FP16,
	})
	if err != nil {
		return res, p.fail(ctx, StageTranscribe, err)
	}
	res.Transcript = transcript
	if strings.TrimSpace(transcript) == "" {
		return res, p.fail(ctx, StageTranscribe, ErrNoSpeech)
	}
	p.logger.Info(ctx, "Transcript ready: %d characters", len(transcript))

	// Step 3: Chunk
	p.stage(ctx, req, StageChunk)
	chunks, err := chunker.Split(transcript, req.ChunkSize)
	if err != nil {
		return res, p.fail(ctx, StageChunk, err)
	}
	res.Chunks = chunks

	// Step 4: Summarize each chunk and combine
	p.stage(ctx, req, StageSummarize)
	summaries, err := p.summarizer.Summarize(ctx, chunks, func(done, total int) {
		if req.Observer != nil {
			req.Observer.ChunkDone(ctx, done, total)
		}
	})
	if err != nil {
		return res, p.fail(ctx, StageSummarize, err)
	}
	res.Summaries = summaries
	res.Combined = summarizer.Combine(summaries)

	// Step 5: Study packet
	p.stage(ctx, req, StageSynthesize)
	material, err := p.synthesizer.Synthesize(ctx, res.Combined, req.Counts)
	if err != nil {
		return res, p.fail(ctx, StageSynthesize, err)
	}
	res.Material = material

	res.Duration = time.Since(startTime)
	p.stage(ctx, req, StageDone)
	p.logger.Info(ctx, "Processing completed: %d chunks in %s", len(chunks), res.Duration)

	return res, nil
}

func (p *implProcessor) withDefaults(req Request) Request {
	if req.ChunkSize == 0 {
		req.ChunkSize = p.cfg.Chunking.Size
	}
	if req.Counts.QuizQuestions == 0 {
		req.Counts.QuizQuestions = p.cfg.Study.QuizQuestions
	}
	if req.Counts.Flashcards == 0 {
		req.Counts.Flashcards = p.cfg.Study.Flashcards
	}
	if req.Model == "" {
		req.Model = p.cfg.Transcription.Variant
	}
	if req.Language == "" {
		req.Language = p.cfg.Transcription.Language
	}
	return req
}

func (p *implProcessor) stage(ctx context.Context, req Request, s Stage) {
	p.logger.Debug(ctx, "Stage: %s", s)
	if req.Observer != nil {
		req.Observer.StageStarted(ctx, s)
	}
}

func (p *implProcessor) fail(ctx context.Context, s Stage, err error) error {
	p.logger.Error(ctx, "Stage %s failed: %v", s, err)
	return &StageError{Stage: s, Err: err}
}
