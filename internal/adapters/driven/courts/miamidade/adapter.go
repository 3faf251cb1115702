// Package miamidade searches the Miami-Dade Clerk of Courts online case
// search (civil, probate, and small claims dockets).
package miamidade

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/courtcheck/internal/adapters/driven/courts/scrape"
	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/logger"
)

// Ensure Adapter implements the interface.
var _ driven.CountyAdapter = (*Adapter)(nil)

const (
	countyKey   = "miami-dade"
	countyName  = "Miami-Dade"
	defaultBase = "https://www2.miamidadeclerk.gov"

	// searchPath is the standard civil/probate/small-claims search.
	searchPath = "/ocs/Search"
)

// Adapter searches Miami-Dade court records over plain HTTP.
type Adapter struct {
	client  *scrape.Client
	baseURL string
}

// New creates a Miami-Dade adapter against the live clerk site.
func New() *Adapter {
	return NewWithBaseURL(defaultBase)
}

// NewWithBaseURL creates an adapter against an alternate base URL.
// Used by tests to point at a fixture server.
func NewWithBaseURL(base string) *Adapter {
	return &Adapter{
		client:  scrape.NewClient(),
		baseURL: base,
	}
}

// County returns the registry key.
func (a *Adapter) County() string { return countyKey }

// DisplayName returns the human-readable county name.
func (a *Adapter) DisplayName() string { return countyName }

// Search queries the online case search by party name. Expected failures
// degrade to an empty outcome with a note.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) (driven.SearchOutcome, error) {
	if _, err := url.Parse(a.baseURL); err != nil || a.baseURL == "" {
		return driven.SearchOutcome{}, fmt.Errorf("miami-dade: invalid base URL %q", a.baseURL)
	}

	params := url.Values{
		"searchtype": {"party"},
		"lastName":   {criteria.LastName},
		"firstName":  {criteria.FirstName},
	}
	if criteria.MiddleName != "" {
		params.Set("middleName", criteria.MiddleName)
	}

	doc, err := a.client.Get(ctx, a.baseURL+searchPath, params)
	if err != nil {
		if scrape.IsExpected(err) {
			logger.Warn("miami-dade: %v", err)
			return driven.SearchOutcome{Note: err.Error()}, nil
		}
		return driven.SearchOutcome{}, fmt.Errorf("miami-dade: %w", err)
	}

	table := scrape.FindByID(doc, "caseSearchResults")
	if table == nil {
		// A valid page with no result grid is either an empty result
		// or a redesigned page; both degrade the same way.
		logger.Debug("miami-dade: no result grid on page")
		return driven.SearchOutcome{Note: "no matching records returned"}, nil
	}

	cases := a.parseRows(scrape.TableRows(table))
	return driven.SearchOutcome{Cases: cases}, nil
}

// parseRows maps the result grid columns onto raw cases. Grid layout:
// case number, filing date, parties, case type, status, judge, section.
func (a *Adapter) parseRows(rows [][]string) []domain.RawCase {
	cases := make([]domain.RawCase, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue // malformed row, skip rather than guess
		}
		c := domain.RawCase{
			CaseNumber: row[0],
			FilingDate: row[1],
			Parties:    row[2],
			CaseType:   row[3],
			Status:     row[4],
			County:     countyName,
			VerificationInstructions: "Verify at the Miami-Dade Clerk of Courts online case search " +
				"or in person at 73 W Flagler St, Miami, FL.",
			SearchResultsURL: defaultBase + "/ocs/",
		}
		if len(row) > 5 {
			c.Judge = row[5]
		}
		if len(row) > 6 {
			c.Section = row[6]
		}
		cases = append(cases, c)
	}
	return cases
}
