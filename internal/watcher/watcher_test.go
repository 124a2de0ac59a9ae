package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
)

type fakeProcessor struct {
	mu   sync.Mutex
	err  error
	reqs []processor.Request
}

func (f *fakeProcessor) Process(ctx context.Context, req processor.Request) (*processor.Result, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Result{
		Transcript: "Heat flows from hot to cold.",
		Material:   &study.Material{Raw: "## Summary\nThermodynamics basics."},
	}, nil
}

func testPaths(t *testing.T) config.PathsConfig {
	root := t.TempDir()
	paths := config.PathsConfig{
		Input:    filepath.Join(root, "input"),
		Output:   filepath.Join(root, "output"),
		Archived: filepath.Join(root, "archived"),
	}
	if err := os.MkdirAll(paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	return paths
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"lecture.wav", true},
		{"LECTURE.MP3", true},
		{"lecture.mp4", false},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isAudioFile(tt.path); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSemaphore_BlocksAtCapacity(t *testing.T) {
	sem := newSemaphore(1)
	if err := sem.acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := sem.acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second acquire error = %v, want deadline exceeded", err)
	}

	sem.release()
	if err := sem.acquire(context.Background()); err != nil {
		t.Errorf("acquire after release error = %v", err)
	}
}

func TestLectureHandler_WritesPacketAndArchives(t *testing.T) {
	paths := testPaths(t)
	src := filepath.Join(paths.Input, "thermo-week2.wav")
	if err := os.WriteFile(src, []byte("RIFF\x00\x00\x00\x00WAVE"), 0644); err != nil {
		t.Fatal(err)
	}

	proc := &fakeProcessor{}
	handle := NewLectureHandler(proc, paths, logger.New("error"))
	if err := handle(context.Background(), src); err != nil {
		t.Fatalf("handle() error = %v", err)
	}

	if len(proc.reqs) != 1 || proc.reqs[0].Filename != "thermo-week2.wav" || len(proc.reqs[0].Audio) == 0 {
		t.Errorf("processor requests = %+v", proc.reqs)
	}
	for _, name := range []string{"thermo-week2.md", "thermo-week2.docx", "thermo-week2-transcript.docx"} {
		if _, err := os.Stat(filepath.Join(paths.Output, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be moved out of the input folder")
	}
	if _, err := os.Stat(filepath.Join(paths.Archived, "thermo-week2.wav")); err != nil {
		t.Errorf("source should be archived: %v", err)
	}
}

func TestLectureHandler_FailureLeavesSource(t *testing.T) {
	paths := testPaths(t)
	src := filepath.Join(paths.Input, "broken.mp3")
	if err := os.WriteFile(src, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("transcription failed")
	handle := NewLectureHandler(&fakeProcessor{err: wantErr}, paths, logger.New("error"))
	if err := handle(context.Background(), src); !errors.Is(err, wantErr) {
		t.Fatalf("handle() error = %v, want %v", err, wantErr)
	}

	if _, err := os.Stat(src); err != nil {
		t.Errorf("failed source should stay in input: %v", err)
	}
	if _, err := os.Stat(paths.Output); !os.IsNotExist(err) {
		t.Error("no output should be written on failure")
	}
}

func TestWatcher_DispatchesAudioFiles(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	got := make(chan string, 4)
	handler := func(ctx context.Context, path string) error {
		calls.Add(1)
		got <- filepath.Base(path)
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the event loop a moment to start selecting
	time.Sleep(20 * time.Millisecond)
	os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "lecture.mp3"), []byte("ID3"), 0644)

	select {
	case name := <-got:
		if name != "lecture.mp3" {
			t.Errorf("handled %s, want lecture.mp3", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 1 {
		t.Errorf("handler calls = %d, want 1", calls.Load())
	}
}
