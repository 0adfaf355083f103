package pipeline

import (
	"sync"
	"time"

	"github.com/studypdf/studypdf/internal/processor"
	"github.com/studypdf/studypdf/internal/prompt"
)

// JobStatus represents the state of a question job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks one asynchronously-processed question against one document.
type Job struct {
	mu sync.Mutex

	ID    string
	DocID string
	Query string
	Mode  prompt.Mode

	Status JobStatus
	Error  string

	// Result fields, populated on completion.
	Answer           string
	Reduced          bool
	Strategy         processor.Strategy
	TotalChunks      int
	SummarizedChunks int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetStatus updates the job state.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// SetResult records a successful outcome.
func (j *Job) SetResult(res processor.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusCompleted
	j.Answer = res.Answer
	j.Reduced = res.Reduced
	j.Strategy = res.Strategy
	j.TotalChunks = res.TotalChunks
	j.SummarizedChunks = res.SummarizedChunks
	j.UpdatedAt = time.Now()
}

// SetFailed marks the job failed with the given message.
func (j *Job) SetFailed(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Error = msg
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID               string             `json:"job_id"`
	DocID            string             `json:"doc_id"`
	Query            string             `json:"query"`
	Mode             prompt.Mode        `json:"mode"`
	Status           JobStatus          `json:"status"`
	Error            string             `json:"error,omitempty"`
	Answer           string             `json:"answer,omitempty"`
	Reduced          bool               `json:"reduced"`
	Strategy         processor.Strategy `json:"strategy,omitempty"`
	TotalChunks      int                `json:"total_chunks,omitempty"`
	SummarizedChunks int                `json:"summarized_chunks,omitempty"`
}

// Snapshot returns a consistent copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobSnapshot{
		ID:               j.ID,
		DocID:            j.DocID,
		Query:            j.Query,
		Mode:             j.Mode,
		Status:           j.Status,
		Error:            j.Error,
		Answer:           j.Answer,
		Reduced:          j.Reduced,
		Strategy:         j.Strategy,
		TotalChunks:      j.TotalChunks,
		SummarizedChunks: j.SummarizedChunks,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes jobs that have not been touched within the TTL.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, job := range s.jobs {
		job.mu.Lock()
		stale := job.UpdatedAt.Before(cutoff)
		job.mu.Unlock()
		if stale {
			delete(s.jobs, id)
		}
	}
}
