package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

type WhisperCPPConfig struct {
	BinaryPath string
	ModelsDir  string
	FFmpegPath string
	SampleRate int
	Threads    int
	Prompt     string
	TempDir    string
}

// WhisperCPP runs a local whisper.cpp binary after converting the input with ffmpeg.
type WhisperCPP struct {
	cfg      WhisperCPPConfig
	executor executor.Executor
	logger   logger.Logger
}

func NewWhisperCPP(cfg WhisperCPPConfig, exec executor.Executor, log logger.Logger) *WhisperCPP {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Threads == 0 {
		cfg.Threads = 4
	}
	return &WhisperCPP{cfg: cfg, executor: exec, logger: log}
}

func (w *WhisperCPP) Transcribe(ctx context.Context, audioPath string, opts Options) (string, error) {
	workDir, err := os.MkdirTemp(w.cfg.TempDir, "whisper-*")
	if err != nil {
		return "", fmt.Errorf("%w: create work dir: %w", ErrTranscriptionFailed, err)
	}
	defer w.cleanupTempDir(ctx, workDir)

	wavPath, err := w.convertAudio(ctx, audioPath, workDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	txtPath, err := w.transcribe(ctx, wavPath, opts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("%w: read transcript: %w", ErrTranscriptionFailed, err)
	}

	return joinSegments(string(data)), nil
}

// convertAudio converts the input to 16kHz mono PCM WAV, the format whisper.cpp expects.
func (w *WhisperCPP) convertAudio(ctx context.Context, audioPath, workDir string) (string, error) {
	wavPath := filepath.Join(workDir, "audio.wav")

	w.logger.Info(ctx, "Converting audio: %s", audioPath)

	// -vn: drop any embedded cover art stream
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", strconv.Itoa(w.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.FFmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	return wavPath, nil
}

// transcribe runs whisper.cpp and returns the path of the plain-text output.
func (w *WhisperCPP) transcribe(ctx context.Context, wavPath string, opts Options) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	modelPath := w.ModelPath(opts.Model)

	w.logger.Info(ctx, "Starting transcription with %d threads, model %s", w.cfg.Threads, modelPath)

	// -otxt: plain text output
	// -l: force language (prevents hallucination)
	args := []string{
		"-m", modelPath,
		"-f", wavPath,
		"-otxt",
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}
	if !opts.FP16 {
		args = append(args, "--no-gpu")
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	w.logger.Info(ctx, "Transcription completed: %s", txtPath)
	return txtPath, nil
}

// ModelPath resolves a variant name to its ggml model file.
func (w *WhisperCPP) ModelPath(variant string) string {
	if variant == "" {
		variant = "base"
	}
	return filepath.Join(w.cfg.ModelsDir, "ggml-"+variant+".bin")
}

func (w *WhisperCPP) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		w.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

// joinSegments flattens whisper's one-segment-per-line output into a single string.
func joinSegments(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
