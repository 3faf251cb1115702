// Package courts contains the county-specific court record adapters.
//
// Each county site has its own markup, search flow, and access rules, so
// each county lives in its own subpackage implementing
// driven.CountyAdapter. Shared HTTP and HTML plumbing lives in the
// scrape subpackage.
//
// Adapters degrade gracefully: expected failures (timeouts, blocked
// pages, markup drift) become an empty outcome with a note, never an
// error. Anti-automation defences are detected and respected, not
// bypassed.
package courts
