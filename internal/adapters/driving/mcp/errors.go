// Package mcp provides an MCP (Model Context Protocol) server adapter for
// courtcheck. It lets AI assistants submit court record searches and poll
// for their results.
package mcp

import "errors"

// ErrMissingJobService is returned when the job service is not provided.
var ErrMissingJobService = errors.New("mcp: job service is required")
