package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/study"
)

// Status represents the state of a lecture job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Settings are the per-request knobs chosen in the upload form.
type Settings struct {
	ChunkSize int          `json:"chunk_size"`
	Counts    study.Counts `json:"counts"`
	Model     string       `json:"model"`
}

// Progress tracks chunk summarization progress.
type Progress struct {
	TotalChunks int `json:"total_chunks"`
	ChunksDone  int `json:"chunks_done"`
}

// Job tracks the state of a single lecture run.
type Job struct {
	mu sync.Mutex

	ID        string
	Filename  string
	Settings  Settings
	Status    Status
	Stage     processor.Stage
	Progress  Progress
	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: not serialized.
	audio  []byte
	result *processor.Result
	err    error
}

// NewJob creates a queued job holding the uploaded audio.
func NewJob(filename string, audio []byte, settings Settings) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Filename:  filename,
		Settings:  settings,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
		audio:     audio,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status Status) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// StageStarted records the stage the pipeline has entered.
func (j *Job) StageStarted(ctx context.Context, stage processor.Stage) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Stage = stage
	j.UpdatedAt = time.Now()
}

// ChunkDone records chunk summarization progress.
func (j *Job) ChunkDone(ctx context.Context, done, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = total
	if done > j.Progress.ChunksDone {
		j.Progress.ChunksDone = done
	}
	j.UpdatedAt = time.Now()
}

// request builds the pipeline request and releases the job's copy of the audio.
func (j *Job) request() processor.Request {
	j.mu.Lock()
	defer j.mu.Unlock()
	req := processor.Request{
		Filename:  j.Filename,
		Audio:     j.audio,
		ChunkSize: j.Settings.ChunkSize,
		Counts:    j.Settings.Counts,
		Model:     j.Settings.Model,
		Observer:  j,
	}
	j.audio = nil
	return req
}

// finish stores the pipeline outcome. A failed job keeps any partial result.
func (j *Job) finish(res *processor.Result, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.err = err
	if err != nil {
		j.Status = StatusFailed
	} else {
		j.Status = StatusCompleted
	}
	j.UpdatedAt = time.Now()
}

// Done reports whether the job reached a terminal status.
func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// Snapshot is a read-only, JSON-safe copy of job state.
type Snapshot struct {
	ID         string          `json:"job_id"`
	Filename   string          `json:"filename"`
	Status     Status          `json:"status"`
	Stage      processor.Stage `json:"stage,omitempty"`
	FailedAt   processor.Stage `json:"failed_at,omitempty"`
	Error      string          `json:"error,omitempty"`
	Settings   Settings        `json:"settings"`
	Progress   Progress        `json:"progress"`
	Transcript string          `json:"transcript,omitempty"`
	Summaries  []string        `json:"summaries,omitempty"`
	Material   *study.Material `json:"material,omitempty"`
	Duration   time.Duration   `json:"duration_ns,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := Snapshot{
		ID:        j.ID,
		Filename:  j.Filename,
		Status:    j.Status,
		Stage:     j.Stage,
		Settings:  j.Settings,
		Progress:  j.Progress,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}

	if j.err != nil {
		s.Error = j.err.Error()
		s.FailedAt = j.Stage
		var se *processor.StageError
		if errors.As(j.err, &se) {
			s.FailedAt = se.Stage
		}
	}

	if r := j.result; r != nil {
		s.Transcript = r.Transcript
		s.Material = r.Material
		s.Duration = r.Duration
		for _, cs := range r.Summaries {
			s.Summaries = append(s.Summaries, cs.Text)
		}
	}

	return s
}
