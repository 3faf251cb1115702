// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// SearchSubmitted carries the outcome of submitting a search job.
type SearchSubmitted struct {
	JobID string
	Err   error
}

// StatusUpdated carries a job status poll result.
type StatusUpdated struct {
	JobID string
	Info  domain.JobStatusInfo
	Err   error
}

// PollTick triggers the next status poll.
type PollTick struct {
	JobID string
}

// ResultLoaded carries the assembled result of a completed job.
type ResultLoaded struct {
	JobID    string
	Response *domain.SearchResponse
	Err      error
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewForm is the search criteria form.
	ViewForm ViewType = iota
	// ViewSearching is the polling/progress view.
	ViewSearching
	// ViewResults is the refined case list.
	ViewResults
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewSearching:
		return "searching"
	case ViewResults:
		return "results"
	default:
		return "unknown"
	}
}
