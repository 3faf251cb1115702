package mcp

import (
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Jobs provides the asynchronous search API.
	Jobs driving.JobService

	// History exposes the local search audit trail.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Jobs == nil {
		return ErrMissingJobService
	}
	// History is optional
	return nil
}
