package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studypdf/studypdf/internal/docstore"
	"github.com/studypdf/studypdf/internal/processor"
	"github.com/studypdf/studypdf/internal/prompt"
)

// ErrQueueFull is returned by Submit when the work queue is at capacity.
var ErrQueueFull = errors.New("question queue is full")

// Orchestrator runs question jobs through a bounded worker pool.
type Orchestrator struct {
	docs      *docstore.Store
	proc      *processor.Processor
	jobs      *JobStore
	log       *slog.Logger
	workers   int
	queue     chan *Job
	wg        sync.WaitGroup
	cancel    context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewOrchestrator(docs *docstore.Store, proc *processor.Processor, jobs *JobStore, log *slog.Logger, workers, queueSize int) *Orchestrator {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 50
	}
	return &Orchestrator{
		docs:    docs,
		proc:    proc,
		jobs:    jobs,
		log:     log,
		workers: workers,
		queue:   make(chan *Job, queueSize),
	}
}

// Start launches the worker pool and the periodic store cleanup.
func (o *Orchestrator) Start(ctx context.Context) {
	o.startOnce.Do(func() {
		ctx, o.cancel = context.WithCancel(ctx)
		for i := 0; i < o.workers; i++ {
			o.wg.Add(1)
			go o.worker(ctx, i)
		}
		o.wg.Add(1)
		go o.cleanupLoop(ctx)
		o.log.Info("orchestrator started", "workers", o.workers, "queue_size", cap(o.queue))
	})
}

// Stop signals workers to finish and waits for them to drain.
func (o *Orchestrator) Stop() {
	o.stopOnce.Do(func() {
		if o.cancel != nil {
			o.cancel()
		}
		o.wg.Wait()
		o.log.Info("orchestrator stopped")
	})
}

// Submit registers a new question job and enqueues it for processing.
func (o *Orchestrator) Submit(docID, query string, mode prompt.Mode) (*Job, error) {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		DocID:     docID,
		Query:     query,
		Mode:      mode,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return job, nil
	default:
		job.SetFailed("queue full")
		return nil, ErrQueueFull
	}
}

func (o *Orchestrator) worker(ctx context.Context, id int) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-o.queue:
			o.log.Debug("worker picked up job", "worker", id, "job_id", job.ID)
			o.process(ctx, job)
		}
	}
}

func (o *Orchestrator) process(ctx context.Context, job *Job) {
	job.SetStatus(StatusProcessing)
	log := o.log.With("job_id", job.ID, "doc_id", job.DocID)

	doc := o.docs.Get(job.DocID)
	if doc == nil {
		job.SetFailed("document not found, it may have expired")
		log.Warn("job references missing document")
		return
	}

	res, err := o.proc.Process(ctx, doc.Text, job.Query, job.Mode)
	if err != nil {
		job.SetFailed(fmt.Sprintf("completion failed: %v", err))
		log.Error("job failed", "error", err)
		return
	}
	job.SetResult(res)
	log.Info("job completed", "strategy", res.Strategy, "reduced", res.Reduced)
}

func (o *Orchestrator) cleanupLoop(ctx context.Context) {
	defer o.wg.Done()
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.jobs.Cleanup()
			o.docs.Cleanup()
		}
	}
}
