package domain

import (
	"fmt"
	"strings"
	"time"
)

// dobLayout is the accepted date-of-birth input format.
const dobLayout = "01/02/2006"

// SearchCriteria holds the parameters for a court records search.
// Criteria are validated at submission and immutable once a job starts.
type SearchCriteria struct {
	// FirstName is the person's first name. Required.
	FirstName string

	// LastName is the person's last name. Required.
	LastName string

	// MiddleName is the person's middle name. Optional.
	MiddleName string

	// DateOfBirth is the person's date of birth in MM/DD/YYYY format.
	// Optional; validated for format and calendar validity when present.
	DateOfBirth string

	// County selects a single county to search. Empty means all
	// registered counties.
	County string
}

// Normalise returns a copy of the criteria with surrounding whitespace
// removed from every field.
func (c SearchCriteria) Normalise() SearchCriteria {
	return SearchCriteria{
		FirstName:   strings.TrimSpace(c.FirstName),
		LastName:    strings.TrimSpace(c.LastName),
		MiddleName:  strings.TrimSpace(c.MiddleName),
		DateOfBirth: strings.TrimSpace(c.DateOfBirth),
		County:      strings.TrimSpace(c.County),
	}
}

// Validate checks that required fields are present and optional fields are
// well-formed. Callers should Normalise first; Validate does not trim.
func (c SearchCriteria) Validate() error {
	if c.FirstName == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidInput)
	}
	if c.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidInput)
	}
	if c.DateOfBirth != "" {
		t, err := time.Parse(dobLayout, c.DateOfBirth)
		if err != nil {
			return fmt.Errorf("%w: date of birth must be MM/DD/YYYY", ErrInvalidInput)
		}
		if t.Year() < 1900 || t.After(time.Now()) {
			return fmt.Errorf("%w: date of birth out of range", ErrInvalidInput)
		}
	}
	return nil
}

// FullName returns the person's display name built from the criteria.
func (c SearchCriteria) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
