package driving

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// JobService is the asynchronous search API consumed by every driving
// adapter. Submit returns immediately with a job id; callers poll Status
// until the job reaches a terminal state, then fetch Result.
type JobService interface {
	// Submit validates the criteria and starts a background search.
	// Returns the job id synchronously without waiting for completion,
	// or domain.ErrInvalidInput (no job created) for invalid criteria.
	Submit(ctx context.Context, criteria domain.SearchCriteria) (string, error)

	// Status returns the job's current state and most recent progress
	// message. Returns domain.ErrNotFound for an unknown id.
	Status(ctx context.Context, id string) (domain.JobStatusInfo, error)

	// Result assembles the response for a completed job. Idempotent:
	// repeated calls return the same payload. Returns
	// domain.ErrNotFound for an unknown id and domain.ErrJobNotComplete
	// unless the job status is complete.
	Result(ctx context.Context, id string) (*domain.SearchResponse, error)

	// Counties returns the registered county keys in registration order.
	Counties() []string
}
