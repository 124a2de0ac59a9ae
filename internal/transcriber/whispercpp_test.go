package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type call struct {
	name string
	args []string
}

// fakeExecutor writes a whisper text file when the whisper binary is invoked.
type fakeExecutor struct {
	calls      []call
	transcript string
	failOn     string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == f.failOn {
		return "", errors.New("exit status 1")
	}
	if i := slices.Index(args, "--output-file"); i >= 0 {
		if err := os.WriteFile(args[i+1]+".txt", []byte(f.transcript), 0644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func newWhisper(t *testing.T, exec *fakeExecutor) (*WhisperCPP, string) {
	t.Helper()
	tmp := t.TempDir()
	w := NewWhisperCPP(WhisperCPPConfig{
		BinaryPath: "whisper-cli",
		ModelsDir:  "/models",
		Threads:    8,
		TempDir:    tmp,
	}, exec, logger.New("error"))
	return w, tmp
}

func TestWhisperCPP_Transcribe(t *testing.T) {
	exec := &fakeExecutor{transcript: " Today we cover cells.\n The nucleus holds DNA.\n\n"}
	w, tmp := newWhisper(t, exec)

	text, err := w.Transcribe(context.Background(), "/uploads/lecture.mp3", Options{Language: "en", Model: "small"})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "Today we cover cells. The nucleus holds DNA." {
		t.Errorf("Transcribe() = %q", text)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected ffmpeg + whisper calls, got %d", len(exec.calls))
	}

	ffmpeg := exec.calls[0]
	if ffmpeg.name != "ffmpeg" {
		t.Errorf("first call = %s, want ffmpeg", ffmpeg.name)
	}
	joined := strings.Join(ffmpeg.args, " ")
	for _, want := range []string{"-i /uploads/lecture.mp3", "-ar 16000", "-ac 1", "-c:a pcm_s16le"} {
		if !strings.Contains(joined, want) {
			t.Errorf("ffmpeg args %q missing %q", joined, want)
		}
	}

	whisper := exec.calls[1]
	joined = strings.Join(whisper.args, " ")
	for _, want := range []string{"-m /models/ggml-small.bin", "-otxt", "-l en", "-t 8", "--no-gpu"} {
		if !strings.Contains(joined, want) {
			t.Errorf("whisper args %q missing %q", joined, want)
		}
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work directory should be removed, found %d entries", len(entries))
	}
}

func TestWhisperCPP_FP16KeepsGPU(t *testing.T) {
	exec := &fakeExecutor{transcript: "hi"}
	w, _ := newWhisper(t, exec)

	if _, err := w.Transcribe(context.Background(), "a.wav", Options{FP16: true}); err != nil {
		t.Fatal(err)
	}
	if slices.Contains(exec.calls[1].args, "--no-gpu") {
		t.Error("--no-gpu should not be passed when FP16 is enabled")
	}
}

func TestWhisperCPP_Failures(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
	}{
		{"ffmpeg fails", "ffmpeg"},
		{"whisper fails", "whisper-cli"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newWhisper(t, &fakeExecutor{failOn: tt.failOn})
			_, err := w.Transcribe(context.Background(), "a.wav", Options{})
			if !errors.Is(err, ErrTranscriptionFailed) {
				t.Errorf("Transcribe() error = %v, want ErrTranscriptionFailed", err)
			}
		})
	}
}

func TestWhisperCPP_ModelPath(t *testing.T) {
	w := NewWhisperCPP(WhisperCPPConfig{ModelsDir: "models"}, nil, logger.New("error"))

	if got := w.ModelPath("medium"); got != filepath.Join("models", "ggml-medium.bin") {
		t.Errorf("ModelPath(medium) = %s", got)
	}
	if got := w.ModelPath(""); got != filepath.Join("models", "ggml-base.bin") {
		t.Errorf("ModelPath(\"\") = %s", got)
	}
}
