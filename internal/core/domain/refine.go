package domain

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// DefaultCaseAgeLimitYears is how many years back cases remain relevant
// for lending due diligence.
const DefaultCaseAgeLimitYears = 5

// DefaultExcludedCaseTypes are the case categories with no lending
// relevance. Matching is case-insensitive and substring-tolerant, so
// "Criminal Felony" is excluded by the "Criminal" entry as well.
var DefaultExcludedCaseTypes = []string{
	"Family",
	"Criminal",
	"Criminal Felony",
	"Criminal Misdemeanor",
	"Traffic",
}

// filingDateLayouts are tried in order when parsing source-reported dates.
// County sites disagree on formats; anything unparsable falls through to
// the fail-open path.
var filingDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
}

// RefineConfig carries the tunable inputs of the refinement pipeline.
// These are configuration, not business constants baked into the
// algorithm; the settings layer supplies them.
type RefineConfig struct {
	// ExcludedCaseTypes lists case categories to drop.
	ExcludedCaseTypes []string

	// CaseAgeLimitYears drops cases filed more than this many years ago.
	CaseAgeLimitYears int
}

// DefaultRefineConfig returns the standard lending due diligence settings.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		ExcludedCaseTypes: DefaultExcludedCaseTypes,
		CaseAgeLimitYears: DefaultCaseAgeLimitYears,
	}
}

// Refine reduces raw adapter output to the lending-relevant case set.
// It is pure: same inputs, same output. Steps, in order:
//
//  1. Exclusion filter: drop excluded case types.
//  2. Age filter: drop cases filed before the cutoff. Unparsable filing
//     dates are kept (fail-open) so odd source data never hides a case.
//  3. Name match: the last name must appear in the party text, and the
//     first name must match directly or via an initial fallback; a
//     middle-name token match may substitute for the first name.
//  4. Stable sort: open cases first, then newest filing date first.
func Refine(raw []RawCase, criteria SearchCriteria, cfg RefineConfig, now time.Time) []CourtCase {
	cutoff := now.AddDate(-cfg.CaseAgeLimitYears, 0, 0)

	refined := make([]CourtCase, 0, len(raw))
	for _, rc := range raw {
		if isExcludedType(rc.CaseType, cfg.ExcludedCaseTypes) {
			continue
		}
		if t, ok := parseFilingDate(rc.FilingDate); ok && t.Before(cutoff) {
			continue
		}
		if !partyMatches(rc.Parties, criteria) {
			continue
		}
		refined = append(refined, rc.refined())
	}

	SortCases(refined)
	return refined
}

// SortCases orders cases by urgency: open/active/pending status first,
// then filing date descending. Unparsable dates sort as oldest. The sort
// is stable so ties keep their pre-sort relative order, which keeps the
// final ordering deterministic regardless of adapter execution order.
func SortCases(cases []CourtCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		pi, pj := statusPriority(cases[i].Status), statusPriority(cases[j].Status)
		if pi != pj {
			return pi < pj
		}
		ti, oki := parseFilingDate(cases[i].FilingDate)
		tj, okj := parseFilingDate(cases[j].FilingDate)
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true // parseable dates before unparsable ones
		default:
			return false
		}
	})
}

// statusPriority buckets a status for sorting: open cases (current legal
// exposure) come first.
func statusPriority(status string) int {
	if IsOpenStatus(status) {
		return 0
	}
	return 1
}

// isExcludedType reports whether a case type matches any exclusion entry,
// case-insensitively and tolerating substrings in either direction
// ("Criminal" excludes "Criminal Felony" and vice versa).
func isExcludedType(caseType string, exclusions []string) bool {
	ct := strings.ToLower(strings.TrimSpace(caseType))
	if ct == "" {
		return false
	}
	for _, ex := range exclusions {
		exl := strings.ToLower(strings.TrimSpace(ex))
		if exl == "" {
			continue
		}
		if strings.Contains(ct, exl) || strings.Contains(exl, ct) {
			return true
		}
	}
	return false
}

// parseFilingDate attempts the known source date formats. The second
// return is false when the date is missing, a placeholder, or unparsable.
func parseFilingDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return time.Time{}, false
	}
	for _, layout := range filingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// partyMatches applies the name-match rule: the last name must appear as
// a token, and the first name must match in one of three forms (full
// name, "J. Doe", "J Doe"); a middle-name token match may substitute for
// a failed first-name match.
func partyMatches(parties string, criteria SearchCriteria) bool {
	text := strings.ToLower(parties)
	last := strings.ToLower(criteria.LastName)
	first := strings.ToLower(criteria.FirstName)

	if !containsToken(text, last) {
		return false
	}

	firstMatch := strings.Contains(text, first)
	if !firstMatch && first != "" {
		initial := first[:1]
		if strings.Contains(text, initial+". "+last) ||
			strings.Contains(text, initial+" "+last) {
			firstMatch = true
		}
	}

	middleMatch := false
	if m := strings.ToLower(criteria.MiddleName); m != "" {
		middleMatch = containsToken(text, m)
	}

	return firstMatch || middleMatch
}

// containsToken reports whether word appears in text as a whole token.
// Both sides are tokenised on non-alphanumeric runes; multi-token words
// (e.g. "o'brien") must appear as a consecutive token run.
func containsToken(text, word string) bool {
	want := tokenise(word)
	if len(want) == 0 {
		return false
	}
	have := tokenise(text)
	for i := 0; i+len(want) <= len(have); i++ {
		matched := true
		for j := range want {
			if have[i+j] != want[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func tokenise(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
