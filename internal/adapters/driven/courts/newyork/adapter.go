// Package newyork searches the New York State Unified Court System's
// WebCivil case search by party name.
package newyork

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
	countyKey   = "new-york"
	countyName  = "New York"
	defaultBase = "https://iapps.courts.state.ny.us"

	searchPath = "/webcivil/FCASSearch"
)

// Adapter searches New York civil court records.
type Adapter struct {
	client  *scrape.Client
	baseURL string
}

// New creates a New York adapter against the live WebCivil site.
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

// Search queries WebCivil by party name. Expected failures degrade to an
// empty outcome with a note.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) (driven.SearchOutcome, error) {
	if a.baseURL == "" {
		return driven.SearchOutcome{}, fmt.Errorf("new-york: base URL not configured")
	}

	params := url.Values{
		"param":        {"P"},
		"txtLastName":  {criteria.LastName},
		"txtFirstName": {criteria.FirstName},
	}

	doc, err := a.client.Get(ctx, a.baseURL+searchPath, params)
	if err != nil {
		if scrape.IsExpected(err) {
			logger.Warn("new-york: %v", err)
			return driven.SearchOutcome{Note: err.Error()}, nil
		}
		return driven.SearchOutcome{}, fmt.Errorf("new-york: %w", err)
	}

	table := scrape.FindByID(doc, "caseList")
	if table == nil {
		logger.Debug("new-york: no case list on page")
		return driven.SearchOutcome{Note: "no matching records returned"}, nil
	}

	// Column layout: index number, caption, case type, filing date,
	// court, status, judge.
	rows := scrape.TableRows(table)
	cases := make([]domain.RawCase, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		c := domain.RawCase{
			CaseNumber:    row[0],
			Parties:       row[1],
			CaseType:      row[2],
			FilingDate:    row[3],
			CourtDivision: row[4],
			Status:        row[5],
			County:        countyName,
			VerificationInstructions: "Verify through the NY Unified Court System WebCivil search " +
				"or the County Clerk's office for the listed court.",
			SearchResultsURL: defaultBase + searchPath,
		}
		if len(row) > 6 {
			c.Judge = row[6]
		}
		cases = append(cases, c)
	}

	return driven.SearchOutcome{Cases: cases}, nil
}
