package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

const cleanupInterval = 5 * time.Minute

// Runner executes queued jobs on a fixed pool of workers.
type Runner struct {
	store     *Store
	queue     chan *Job
	processor processor.Processor
	logger    logger.Logger
	workers   int

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewRunner(proc processor.Processor, store *Store, workers, queueSize int, log logger.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Runner{
		store:     store,
		queue:     make(chan *Job, queueSize),
		processor: proc,
		logger:    log,
		workers:   workers,
	}
}

// Start launches worker goroutines and the store cleanup loop.
func (r *Runner) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for range r.workers {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-r.queue:
					if !ok {
						return
					}
					r.run(workerCtx, job)
				}
			}
		}()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if n := r.store.Cleanup(); n > 0 {
					r.logger.Debug(workerCtx, "Evicted %d expired jobs", n)
				}
			}
		}
	}()

	r.logger.Info(ctx, "Job runner started with %d workers", r.workers)
}

// Stop cancels in-flight work, waits for workers to exit and fails any
// job still waiting in the queue with ErrStopped.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.queue)
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()

	// jobs still queued never ran
	for job := range r.queue {
		job.finish(nil, ErrStopped)
	}
}

// Submit registers the job and queues it for processing.
func (r *Runner) Submit(job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrStopped
	}

	r.store.Put(job)
	select {
	case r.queue <- job:
		return nil
	default:
		job.finish(nil, ErrQueueFull)
		return fmt.Errorf("%w (%d)", ErrQueueFull, cap(r.queue))
	}
}

// Get returns a job by ID.
func (r *Runner) Get(id string) *Job {
	return r.store.Get(id)
}

func (r *Runner) QueueDepth() int {
	return len(r.queue)
}

func (r *Runner) run(ctx context.Context, job *Job) {
	ctx = logger.WithJobID(ctx, job.ID)
	if ctx.Err() != nil {
		job.finish(nil, ErrStopped)
		return
	}
	job.SetStatus(StatusRunning)

	r.logger.Info(ctx, "Job started: %s", job.Filename)

	res, err := r.processor.Process(ctx, job.request())
	job.finish(res, err)

	if err != nil {
		r.logger.Error(ctx, "Job failed: %v", err)
		return
	}
	r.logger.Info(ctx, "Job completed in %s", res.Duration)
}
