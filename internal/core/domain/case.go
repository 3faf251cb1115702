package domain

import "strings"

// openStatusKeywords identify a case with current legal exposure. A case
// status containing any of these (case-insensitive) is bucketed as open.
var openStatusKeywords = []string{"open", "active", "pending"}

// RawCase is a court record as reported by a county adapter, prior to
// refinement. All fields are free text exactly as scraped; there is no
// uniqueness guarantee within or across counties.
type RawCase struct {
	// CaseNumber is the court's identifier for the case.
	CaseNumber string

	// CaseType is the court-reported case category (Civil, Family, ...).
	CaseType string

	// FilingDate is the filing date as reported, possibly unparsable.
	FilingDate string

	// Status is the court-reported case status.
	Status string

	// County is the county the record came from.
	County string

	// Parties is the court-reported party text.
	Parties string

	// CourtDivision is the division handling the case, if reported.
	CourtDivision string

	// Judge is the assigned judge, if reported.
	Judge string

	// Amount is the monetary amount involved, if reported.
	Amount string

	// DispositionDate is the date the case was disposed, if reported.
	DispositionDate string

	// Section is the court section or location, if reported.
	Section string

	// VerificationInstructions tell a reviewer how to verify the record
	// against the official source.
	VerificationInstructions string

	// SearchResultsURL links to the source search results page.
	SearchResultsURL string
}

// CourtCase is a refined court record: a RawCase that survived exclusion,
// age, and name-match filtering. The JSON tags are the wire contract
// consumed by API clients and must not change.
type CourtCase struct {
	CaseNumber               string `json:"case_number"`
	CaseType                 string `json:"case_type"`
	FilingDate               string `json:"filing_date"`
	Status                   string `json:"status"`
	County                   string `json:"county"`
	Parties                  string `json:"parties"`
	CourtDivision            string `json:"court_division"`
	Judge                    string `json:"judge"`
	Amount                   string `json:"amount"`
	DispositionDate          string `json:"disposition_date"`
	Section                  string `json:"section"`
	VerificationInstructions string `json:"verification_instructions"`
	SearchResultsURL         string `json:"search_results_url"`
}

// IsOpen returns true if the case status indicates current legal exposure
// (open, active, or pending).
func (c CourtCase) IsOpen() bool {
	return IsOpenStatus(c.Status)
}

// IsOpenStatus reports whether a status string falls into the open bucket.
// Matching is a case-insensitive keyword search so that source variations
// such as "OPEN", "Active - Pending Trial" or "Reopened" still count.
func IsOpenStatus(status string) bool {
	s := strings.ToLower(status)
	for _, kw := range openStatusKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// refined converts a raw record into its refined form. Field-for-field;
// refinement decides inclusion and ordering, never content.
func (r RawCase) refined() CourtCase {
	return CourtCase{
		CaseNumber:               r.CaseNumber,
		CaseType:                 r.CaseType,
		FilingDate:               r.FilingDate,
		Status:                   r.Status,
		County:                   r.County,
		Parties:                  r.Parties,
		CourtDivision:            r.CourtDivision,
		Judge:                    r.Judge,
		Amount:                   r.Amount,
		DispositionDate:          r.DispositionDate,
		Section:                  r.Section,
		VerificationInstructions: r.VerificationInstructions,
		SearchResultsURL:         r.SearchResultsURL,
	}
}
