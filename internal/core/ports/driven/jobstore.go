package driven

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// JobStore owns the shared job state accessed by the submitting caller,
// the background search task, and concurrent pollers. Implementations
// must synchronise internally so a reader never observes a partially
// written record, and must reject a second terminal write for a job.
//
// Jobs are never deleted: the store grows for the life of the process.
// Known limitation of this internal tool; a production variant would add
// a TTL or eviction policy.
type JobStore interface {
	// Create stores a new job record.
	Create(ctx context.Context, job domain.Job) error

	// Get returns a consistent snapshot of a job.
	// Returns domain.ErrNotFound for an unknown id.
	Get(ctx context.Context, id string) (*domain.Job, error)

	// SetProgress updates the job's progress message, last-writer-wins.
	// A no-op once the job is terminal.
	SetProgress(ctx context.Context, id, message string) error

	// SetTerminal performs the single allowed terminal transition.
	// Returns domain.ErrJobTerminal if the job is already terminal, so
	// concurrent completion attempts cannot race to overwrite one
	// terminal state with another.
	SetTerminal(ctx context.Context, id string, terminal domain.JobTerminal) error
}
