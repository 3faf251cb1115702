package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrJobNotComplete indicates results were requested before the job
	// reached the complete state.
	ErrJobNotComplete = errors.New("job not complete")

	// ErrJobTerminal indicates an attempt to transition a job that has
	// already reached a terminal state.
	ErrJobTerminal = errors.New("job already in terminal state")

	// ErrUnsupportedCounty indicates no adapter is registered for the
	// requested county.
	ErrUnsupportedCounty = errors.New("unsupported county")

	// ErrCredentialsRequired indicates a county adapter needs stored
	// credentials but none are configured.
	ErrCredentialsRequired = errors.New("credentials required")
)
