package pipeline

import (
	"crypto/sha256"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/dgallion1/doctoc/internal/document"
	"github.com/dgallion1/doctoc/internal/toc"
	"github.com/google/uuid"
)

// JobStatus represents the state of an upload job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusReading      JobStatus = "reading"
	StatusTransforming JobStatus = "transforming"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
	StatusSkipped      JobStatus = "skipped"
)

// Job tracks the state of a single uploaded document.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData  []byte
	overrides map[string]string
	result    *Result
	errors    []string
}

// Result is the transformed document attached to a finished job.
type Result struct {
	Outcome  string
	Headings int
	Body     string
	Outline  string
	Static   bool
}

// NewJob creates a queued job for an uploaded file. overrides are applied to
// the document metadata after reading, so they win over front matter.
func NewJob(filename string, data []byte, overrides map[string]string) *Job {
	now := time.Now()
	job := &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
	if len(overrides) > 0 {
		job.overrides = maps.Clone(overrides)
		job.Title = overrides[document.MetaTitle]
	}
	return job
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
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

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.UpdatedAt = time.Now()
}

// SetResult attaches the transformed document and releases the upload bytes.
func (j *Job) SetResult(doc *document.Document, res toc.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &Result{
		Outcome:  res.Outcome,
		Headings: res.Headings,
		Body:     doc.Body,
		Outline:  doc.Outline,
		Static:   doc.Static,
	}
	j.Title = doc.Title()
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// Overrides returns a copy of the per-upload metadata overrides.
func (j *Job) Overrides() map[string]string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return maps.Clone(j.overrides)
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash,omitempty"`
	Outcome     string    `json:"outcome,omitempty"`
	Headings    int       `json:"headings"`
	HasOutline  bool      `json:"has_outline"`
	Outline     string    `json:"outline,omitempty"`
	Body        string    `json:"body,omitempty"`
	Errors      []string  `json:"errors"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.errors))
	copy(errs, j.errors)
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		Errors:      errs,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if r := j.result; r != nil {
		snap.Outcome = r.Outcome
		snap.Headings = r.Headings
		snap.HasOutline = r.Outline != ""
		snap.Outline = r.Outline
		snap.Body = r.Body
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
