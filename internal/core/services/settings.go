package services

import (
	"time"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyExcludedCaseTypes = "search.excluded_case_types"
	keyCaseAgeLimitYears = "search.case_age_limit_years"
	keyCourtesyDelayMS   = "search.courtesy_delay_ms"
	keyEnabledCounties   = "search.enabled_counties"
)

// SettingsService maps config store keys onto domain settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing keys fall back to
// the defaults field by field.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return settings, nil
	}

	if v := s.configStore.GetStringSlice(keyExcludedCaseTypes); v != nil {
		settings.ExcludedCaseTypes = v
	}
	if v := s.configStore.GetInt(keyCaseAgeLimitYears); v > 0 {
		settings.CaseAgeLimitYears = v
	}
	if v := s.configStore.GetInt(keyCourtesyDelayMS); v > 0 {
		settings.CourtesyDelay = time.Duration(v) * time.Millisecond
	}
	if v := s.configStore.GetStringSlice(keyEnabledCounties); v != nil {
		settings.EnabledCounties = v
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := s.configStore.Set(keyExcludedCaseTypes, settings.ExcludedCaseTypes); err != nil {
		return err
	}
	if err := s.configStore.Set(keyCaseAgeLimitYears, settings.CaseAgeLimitYears); err != nil {
		return err
	}
	if err := s.configStore.Set(keyCourtesyDelayMS, int(settings.CourtesyDelay/time.Millisecond)); err != nil {
		return err
	}
	if err := s.configStore.Set(keyEnabledCounties, settings.EnabledCounties); err != nil {
		return err
	}
	return s.configStore.Save()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}
