package driven

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// CountyAdapter searches one county's public court records.
// Each county site has its own markup and access rules, so each county
// gets its own implementation behind this contract.
//
// Expected failure modes (navigation timeout, anti-automation challenge,
// markup structure mismatch) must NOT be returned as errors: the adapter
// reports an empty outcome with a descriptive Note instead, so one
// misbehaving county never fails the whole search. An error return is
// reserved for truly unrecoverable conditions (misconfiguration) and
// terminates the job.
//
// Adapters are stateless per call: Search must be safe to invoke with no
// prior state and produce a fresh result each time.
type CountyAdapter interface {
	// County returns the stable registry key for this adapter.
	County() string

	// DisplayName returns the human-readable county name used in
	// progress messages and results.
	DisplayName() string

	// Search queries the county's records for the given criteria.
	Search(ctx context.Context, criteria domain.SearchCriteria) (SearchOutcome, error)
}

// SearchOutcome is one adapter's contribution to a search.
type SearchOutcome struct {
	// Cases are the raw records found. Empty on a graceful failure.
	Cases []domain.RawCase

	// Note carries an adapter-level remark surfaced through progress
	// messaging, e.g. "anti-automation challenge detected". Empty when
	// the search ran cleanly.
	Note string
}

// AdapterFactory creates a fresh adapter instance. Registered per county
// so that adding a county requires only a registration call.
type AdapterFactory func() CountyAdapter

// AdapterRegistry maps county keys to adapter factories.
type AdapterRegistry interface {
	// Register adds a county adapter factory under its key.
	// Registration order is preserved for deterministic resolution.
	Register(key string, factory AdapterFactory)

	// Resolve returns adapter instances for the selection. An empty
	// county selects all registered adapters in registration order.
	// Returns domain.ErrUnsupportedCounty for an unknown key.
	Resolve(county string) ([]CountyAdapter, error)

	// Counties returns the registered county keys in registration order.
	Counties() []string
}
