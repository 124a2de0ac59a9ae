package transcriber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lecture.wav")
	if err := os.WriteFile(path, []byte("RIFF\x00\x00\x00\x00WAVEfmt "), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAI_Transcribe(t *testing.T) {
	var model, language string
	var fileBytes []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		model = r.FormValue("model")
		language = r.FormValue("language")
		if f, _, err := r.FormFile("file"); err == nil {
			fileBytes, _ = io.ReadAll(f)
			f.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "  Welcome to biology 101.  "}`))
	}))
	defer srv.Close()

	tr, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"}, logger.New("error"))
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}

	text, err := tr.Transcribe(context.Background(), writeAudio(t), Options{Language: "en", Model: "base"})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "Welcome to biology 101." {
		t.Errorf("Transcribe() = %q", text)
	}
	if model != "whisper-1" {
		t.Errorf("model = %q, want whisper-1", model)
	}
	if language != "en" {
		t.Errorf("language = %q, want en", language)
	}
	if len(fileBytes) == 0 {
		t.Error("audio file was not uploaded")
	}
}

func TestOpenAI_TranscribeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "bad audio"}}`))
	}))
	defer srv.Close()

	tr, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"}, logger.New("error"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Transcribe(context.Background(), writeAudio(t), Options{}); !errors.Is(err, ErrTranscriptionFailed) {
		t.Errorf("server error: got %v, want ErrTranscriptionFailed", err)
	}
	if _, err := tr.Transcribe(context.Background(), "/does/not/exist.wav", Options{}); !errors.Is(err, ErrTranscriptionFailed) {
		t.Errorf("missing file: got %v, want ErrTranscriptionFailed", err)
	}
}

func TestNewOpenAI_MissingKey(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{}, logger.New("error")); err == nil {
		t.Error("expected error without API key")
	}
}
