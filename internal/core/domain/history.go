package domain

import "time"

// HistoryEntry is one row of the local search audit trail. History is
// advisory bookkeeping for the operator; jobs themselves are never
// persisted.
type HistoryEntry struct {
	// JobID links the entry to the in-memory job that produced it.
	JobID string

	// FirstName and LastName identify who was searched.
	FirstName string
	LastName  string

	// County is the selected county, empty for a search of all.
	County string

	// Status is the terminal job status.
	Status JobStatus

	// TotalCases and OpenCases are the result counts for complete jobs.
	TotalCases int
	OpenCases  int

	// Err is the failure description for errored jobs.
	Err string

	// StartedAt and FinishedAt bound the job's execution.
	StartedAt  time.Time
	FinishedAt time.Time
}
