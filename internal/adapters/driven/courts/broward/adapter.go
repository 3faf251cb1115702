// Package broward searches the Broward County Clerk of Courts case
// search. Broward gates its public search behind an anti-automation
// challenge, so this adapter uses subscriber-level access with stored
// credentials; without them it degrades to a graceful skip.
package broward

import (
	"context"
	"errors"
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
	countyKey   = "broward"
	countyName  = "Broward"
	defaultBase = "https://www.browardclerk.org"

	loginPath  = "/Web2/Account/Login/"
	searchPath = "/Web2/CaseSearchECA/Index/"
)

// Adapter searches Broward court records through the subscriber portal.
type Adapter struct {
	client      *scrape.Client
	baseURL     string
	credentials driven.CredentialsStore
}

// New creates a Broward adapter against the live clerk site.
func New(credentials driven.CredentialsStore) *Adapter {
	return NewWithBaseURL(defaultBase, credentials)
}

// NewWithBaseURL creates an adapter against an alternate base URL.
// Used by tests to point at a fixture server.
func NewWithBaseURL(base string, credentials driven.CredentialsStore) *Adapter {
	return &Adapter{
		client:      scrape.NewClient(),
		baseURL:     base,
		credentials: credentials,
	}
}

// County returns the registry key.
func (a *Adapter) County() string { return countyKey }

// DisplayName returns the human-readable county name.
func (a *Adapter) DisplayName() string { return countyName }

// Search logs into the subscriber portal and queries by party name.
// Missing credentials and expected site failures degrade to an empty
// outcome with a note; an unreadable credentials store is a real error.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) (driven.SearchOutcome, error) {
	creds, err := a.lookupCredentials(ctx)
	if err != nil {
		return driven.SearchOutcome{}, err
	}
	if creds == nil {
		return driven.SearchOutcome{
			Note: "subscriber credentials not configured; county skipped",
		}, nil
	}

	if err := a.login(ctx, *creds); err != nil {
		if scrape.IsExpected(err) {
			logger.Warn("broward: login: %v", err)
			return driven.SearchOutcome{Note: err.Error()}, nil
		}
		return driven.SearchOutcome{}, fmt.Errorf("broward: login: %w", err)
	}

	form := url.Values{
		"SearchType": {"PartyName"},
		"LastName":   {criteria.LastName},
		"FirstName":  {criteria.FirstName},
	}
	if criteria.MiddleName != "" {
		form.Set("MiddleName", criteria.MiddleName)
	}
	if criteria.DateOfBirth != "" {
		form.Set("DateOfBirth", criteria.DateOfBirth)
	}

	doc, err := a.client.PostForm(ctx, a.baseURL+searchPath+"?AccessLevel=SUBSCRIBER", form)
	if err != nil {
		if scrape.IsExpected(err) {
			logger.Warn("broward: search: %v", err)
			return driven.SearchOutcome{Note: err.Error()}, nil
		}
		return driven.SearchOutcome{}, fmt.Errorf("broward: search: %w", err)
	}

	grid := scrape.FindByClass(doc, "table", "k-grid-table")
	if len(grid) == 0 {
		logger.Debug("broward: no result grid on page")
		return driven.SearchOutcome{Note: "no matching records returned"}, nil
	}

	cases := a.parseRows(scrape.TableRows(grid[0]))
	return driven.SearchOutcome{Cases: cases}, nil
}

// lookupCredentials returns nil credentials when none are configured.
func (a *Adapter) lookupCredentials(ctx context.Context) (*domain.Credentials, error) {
	if a.credentials == nil {
		return nil, nil
	}
	creds, err := a.credentials.Get(ctx, countyKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("broward: credentials store: %w", err)
	}
	if !creds.Valid() {
		return nil, nil
	}
	return creds, nil
}

// login establishes the subscriber session on the client's cookie jar.
func (a *Adapter) login(ctx context.Context, creds domain.Credentials) error {
	form := url.Values{
		"UserName": {creds.Username},
		"Password": {creds.Password},
	}
	doc, err := a.client.PostForm(ctx, a.baseURL+loginPath, form)
	if err != nil {
		return err
	}

	// A login form in the response means the credentials were rejected.
	if scrape.FindByID(doc, "loginForm") != nil {
		return fmt.Errorf("%w: subscriber login rejected", scrape.ErrMarkup)
	}
	return nil
}

// parseRows maps the subscriber grid columns onto raw cases. Grid layout:
// case number, parties, case type, filing date, status, division, judge,
// amount, disposition date.
func (a *Adapter) parseRows(rows [][]string) []domain.RawCase {
	cases := make([]domain.RawCase, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		c := domain.RawCase{
			CaseNumber: row[0],
			Parties:    row[1],
			CaseType:   row[2],
			FilingDate: row[3],
			Status:     row[4],
			County:     countyName,
			VerificationInstructions: "Verify through the Broward County Clerk of Courts case search " +
				"(registered access) or at 201 SE 6th St, Fort Lauderdale, FL.",
			SearchResultsURL: defaultBase + searchPath + "?AccessLevel=SUBSCRIBER",
		}
		if len(row) > 5 {
			c.CourtDivision = row[5]
		}
		if len(row) > 6 {
			c.Judge = row[6]
		}
		if len(row) > 7 {
			c.Amount = row[7]
		}
		if len(row) > 8 {
			c.DispositionDate = row[8]
		}
		cases = append(cases, c)
	}
	return cases
}
