package domain

import "time"

// JobStatus is the lifecycle state of a search job.
type JobStatus string

// Job lifecycle states. Running transitions exactly once into one of the
// terminal states and never back.
const (
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusError    JobStatus = "error"
)

// IsTerminal returns true for complete and error.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusComplete || s == JobStatusError
}

// Job is one asynchronous search across the selected counties. Jobs are
// ephemeral: they live in memory for the life of the process and are
// never evicted (known limitation of this internal tool).
type Job struct {
	// ID is the opaque unique job identifier.
	ID string

	// Criteria is the validated search input. Immutable after creation.
	Criteria SearchCriteria

	// Status is the current lifecycle state.
	Status JobStatus

	// Message is the most recent human-readable progress note,
	// last-writer-wins.
	Message string

	// Cases holds the refined result set. Populated only on complete.
	Cases []CourtCase

	// SearchedCounties lists the counties actually queried. Populated
	// on complete.
	SearchedCounties []string

	// Refine is the pipeline configuration the job ran with, captured
	// at submission so result assembly stays stable under config
	// reloads.
	Refine RefineConfig

	// Err is the failure description. Populated only on error.
	Err string

	// StartedAt is when the job was submitted.
	StartedAt time.Time

	// FinishedAt is when the job reached a terminal state.
	FinishedAt time.Time
}

// JobStatusInfo is the pollable status snapshot returned to callers.
type JobStatusInfo struct {
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}

// JobTerminal describes the single allowed terminal transition of a job.
// Exactly one of Cases/Err is meaningful, matching the status.
type JobTerminal struct {
	// Status must be JobStatusComplete or JobStatusError.
	Status JobStatus

	// Cases is the final refined, globally sorted result set. Only
	// meaningful for complete.
	Cases []CourtCase

	// SearchedCounties lists the counties queried. Only meaningful for
	// complete.
	SearchedCounties []string

	// Message is the final progress message.
	Message string

	// Err is the failure description. Only meaningful for error.
	Err string
}
