package transcriber

import (
	"context"
	"errors"
)

// ErrTranscriptionFailed wraps any failure of the speech-recognition backend.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Options are per-request transcription settings.
type Options struct {
	// Language is an ISO-639-1 hint such as "en".
	Language string
	// Model is the model variant, e.g. "base" or "small". Hosted backends may ignore it.
	Model string
	// FP16 enables half-precision / GPU inference where the backend supports it.
	FP16 bool
}

// Transcriber converts an audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (string, error)
}
