// Package domain contains the core business entities and pure business
// logic for court record searches: search criteria, court cases, the
// refinement pipeline, asynchronous job state, and the API response shape.
// It has no dependencies on adapters or external services.
package domain
