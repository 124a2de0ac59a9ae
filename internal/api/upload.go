package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/ingest"
	"github.com/nguyentantai21042004/lecture-notes/internal/jobs"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
)

var supportedExtensions = []string{".wav", ".mp3"}

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &uploadError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// parseUpload reads the multipart form into a queued job.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (*jobs.Job, error) {
	maxBytes := s.cfg.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &uploadError{status: http.StatusRequestEntityTooLarge, msg: fmt.Sprintf("file exceeds max size (%d bytes)", maxBytes)}
		}
		return nil, badRequest("invalid multipart form: %v", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, badRequest("file is required")
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if ext := strings.ToLower(filepath.Ext(filename)); !slices.Contains(supportedExtensions, ext) {
		return nil, badRequest("unsupported file type %q: upload a .wav or .mp3 file", ext)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, &uploadError{status: http.StatusInternalServerError, msg: "failed to read file"}
	}
	if int64(len(data)) > maxBytes {
		return nil, &uploadError{status: http.StatusRequestEntityTooLarge, msg: fmt.Sprintf("file exceeds max size (%d bytes)", maxBytes)}
	}

	if _, err := ingest.Sniff(data); err != nil {
		return nil, badRequest("%v", err)
	}

	settings, err := s.parseSettings(r)
	if err != nil {
		return nil, err
	}

	return jobs.NewJob(filename, data, settings), nil
}

func (s *Server) parseSettings(r *http.Request) (jobs.Settings, error) {
	settings := jobs.Settings{
		ChunkSize: s.cfg.Chunking.Size,
		Counts: study.Counts{
			QuizQuestions: s.cfg.Study.QuizQuestions,
			Flashcards:    s.cfg.Study.Flashcards,
		},
		Model: s.cfg.Transcription.Variant,
	}

	var err error
	if settings.ChunkSize, err = intField(r, "chunk_size", settings.ChunkSize, s.cfg.Chunking.MinSize, s.cfg.Chunking.MaxSize); err != nil {
		return settings, err
	}
	if settings.Counts.QuizQuestions, err = intField(r, "quiz_questions", settings.Counts.QuizQuestions, 1, s.cfg.Study.MaxCount); err != nil {
		return settings, err
	}
	if settings.Counts.Flashcards, err = intField(r, "flashcards", settings.Counts.Flashcards, 1, s.cfg.Study.MaxCount); err != nil {
		return settings, err
	}

	if v := r.FormValue("model"); v != "" {
		if !slices.Contains(s.cfg.Transcription.Variants, v) {
			return settings, badRequest("unknown model %q", v)
		}
		settings.Model = v
	}

	return settings, nil
}

func intField(r *http.Request, name string, def, lo, hi int) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest("%s must be a number", name)
	}
	if n < lo || n > hi {
		return 0, badRequest("%s must be between %d and %d", name, lo, hi)
	}
	return n, nil
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
