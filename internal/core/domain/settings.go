package domain

import "time"

// DefaultCourtesyDelay is the pause between county adapter invocations,
// applied so consecutive searches do not hammer the public sites.
const DefaultCourtesyDelay = 2 * time.Second

// Settings holds user-tunable behaviour loaded from the config store.
type Settings struct {
	// ExcludedCaseTypes overrides the default exclusion set.
	ExcludedCaseTypes []string

	// CaseAgeLimitYears overrides the default case age limit.
	CaseAgeLimitYears int

	// CourtesyDelay is the pause between county adapter invocations.
	CourtesyDelay time.Duration

	// EnabledCounties restricts "search all" to a subset of registered
	// counties. Empty means all.
	EnabledCounties []string
}

// DefaultSettings returns the standard configuration.
func DefaultSettings() Settings {
	return Settings{
		ExcludedCaseTypes: DefaultExcludedCaseTypes,
		CaseAgeLimitYears: DefaultCaseAgeLimitYears,
		CourtesyDelay:     DefaultCourtesyDelay,
	}
}

// RefineConfig derives the refinement pipeline inputs from the settings.
func (s Settings) RefineConfig() RefineConfig {
	cfg := RefineConfig{
		ExcludedCaseTypes: s.ExcludedCaseTypes,
		CaseAgeLimitYears: s.CaseAgeLimitYears,
	}
	if len(cfg.ExcludedCaseTypes) == 0 {
		cfg.ExcludedCaseTypes = DefaultExcludedCaseTypes
	}
	if cfg.CaseAgeLimitYears <= 0 {
		cfg.CaseAgeLimitYears = DefaultCaseAgeLimitYears
	}
	return cfg
}
