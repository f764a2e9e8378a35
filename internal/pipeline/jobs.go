package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gedgest/gedgest/internal/gentree"
)

// NewJobID returns a fresh identifier for a conversion job.
func NewJobID() string {
	return uuid.New().String()
}

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusBuilding  JobStatus = "building"
	StatusEncoding  JobStatus = "encoding"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single report conversion.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData  []byte
	result    []byte
	anomalies []gentree.Anomaly
	errors    []string
}

// Progress tracks conversion progress and outcome counts.
type Progress struct {
	TotalLines  int      `json:"total_lines"`
	Individuals int      `json:"individuals"`
	Unions      int      `json:"unions"`
	Anomalies   int      `json:"anomalies"`
	Errors      []string `json:"errors"`
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

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
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
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalLines records the parsed line count.
func (j *Job) SetTotalLines(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalLines = n
	j.UpdatedAt = time.Now()
}

// SetCounts records the sizes of the finished tree.
func (j *Job) SetCounts(individuals, unions int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Individuals = individuals
	j.Progress.Unions = unions
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw upload bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw upload bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the rendered GEDCOM document and drops the upload bytes,
// which are no longer needed.
func (j *Job) SetResult(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = data
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the rendered GEDCOM document, nil until completion.
func (j *Job) Result() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetAnomalies stores the builder's review list.
func (j *Job) SetAnomalies(anomalies []gentree.Anomaly) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.anomalies = anomalies
	j.Progress.Anomalies = len(anomalies)
	j.UpdatedAt = time.Now()
}

// Anomalies returns the review list recorded during the build phase.
func (j *Job) Anomalies() []gentree.Anomaly {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.anomalies
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalLines:  j.Progress.TotalLines,
			Individuals: j.Progress.Individuals,
			Unions:      j.Progress.Unions,
			Anomalies:   j.Progress.Anomalies,
			Errors:      errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
