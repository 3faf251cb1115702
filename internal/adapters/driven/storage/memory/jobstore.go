// Package memory provides in-memory implementations of driven storage
// ports. Jobs are ephemeral and never survive a process restart.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// JobStore is an in-memory implementation of driven.JobStore.
//
// A single RWMutex guards the map and every record within it; Get copies
// the record out under the lock so pollers never observe a partially
// written terminal state. Records are never removed (documented
// limitation: the store grows for the life of the process).
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewJobStore creates a new in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*domain.Job),
	}
}

// Create stores a new job record.
func (s *JobStore) Create(_ context.Context, job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s: already exists", job.ID)
	}
	stored := job
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a consistent snapshot of a job.
func (s *JobStore) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	snapshot := *job
	snapshot.Cases = append([]domain.CourtCase(nil), job.Cases...)
	snapshot.SearchedCounties = append([]string(nil), job.SearchedCounties...)
	return &snapshot, nil
}

// SetProgress updates the job's progress message, last-writer-wins.
// Progress writes after the terminal transition are ignored.
func (s *JobStore) SetProgress(_ context.Context, id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if job.Status.IsTerminal() {
		return nil
	}
	job.Message = message
	return nil
}

// SetTerminal performs the single allowed terminal transition. A second
// terminal write returns domain.ErrJobTerminal and leaves the record
// untouched.
func (s *JobStore) SetTerminal(_ context.Context, id string, terminal domain.JobTerminal) error {
	if !terminal.Status.IsTerminal() {
		return fmt.Errorf("job %s: %q is not a terminal status", id, terminal.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("job %s: %w", id, domain.ErrJobTerminal)
	}

	job.Status = terminal.Status
	job.FinishedAt = time.Now()
	if terminal.Message != "" {
		job.Message = terminal.Message
	}

	switch terminal.Status {
	case domain.JobStatusComplete:
		job.Cases = append([]domain.CourtCase(nil), terminal.Cases...)
		job.SearchedCounties = append([]string(nil), terminal.SearchedCounties...)
		job.Err = ""
	case domain.JobStatusError:
		job.Cases = nil
		job.SearchedCounties = nil
		job.Err = terminal.Err
	}
	return nil
}

// Len returns the number of stored jobs. Used by diagnostics.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
