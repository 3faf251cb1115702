package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// mockJobService is a mock implementation of driving.JobService.
type mockJobService struct {
	jobID     string
	submitErr error

	statuses  []domain.JobStatusInfo
	statusIdx int

	result    *domain.SearchResponse
	resultErr error

	counties []string

	submitted []domain.SearchCriteria
}

func (m *mockJobService) Submit(_ context.Context, criteria domain.SearchCriteria) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	m.submitted = append(m.submitted, criteria)
	return m.jobID, nil
}

// Status walks through the configured status sequence, repeating the
// last entry once exhausted.
func (m *mockJobService) Status(_ context.Context, _ string) (domain.JobStatusInfo, error) {
	if len(m.statuses) == 0 {
		return domain.JobStatusInfo{Status: domain.JobStatusComplete}, nil
	}
	info := m.statuses[m.statusIdx]
	if m.statusIdx < len(m.statuses)-1 {
		m.statusIdx++
	}
	return info, nil
}

func (m *mockJobService) Result(_ context.Context, _ string) (*domain.SearchResponse, error) {
	return m.result, m.resultErr
}

func (m *mockJobService) Counties() []string { return m.counties }

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	saved    []domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(settings domain.Settings) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, settings)
	m.settings = settings
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// mockCredentialsStore is a mock implementation of driven.CredentialsStore.
type mockCredentialsStore struct {
	creds map[string]domain.Credentials
	err   error
}

func (m *mockCredentialsStore) Get(_ context.Context, county string) (*domain.Credentials, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.creds[county]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *mockCredentialsStore) Save(_ context.Context, c domain.Credentials) error {
	if m.err != nil {
		return m.err
	}
	if m.creds == nil {
		m.creds = make(map[string]domain.Credentials)
	}
	m.creds[c.County] = c
	return nil
}

func (m *mockCredentialsStore) Delete(_ context.Context, county string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.creds, county)
	return nil
}

func completeResponse() *domain.SearchResponse {
	r := domain.AssembleResponse(
		domain.SearchCriteria{FirstName: "John", LastName: "Doe"},
		[]domain.CourtCase{
			{CaseNumber: "2025-001", CaseType: "Contract", FilingDate: "01/15/2025", Status: "Open", County: "Miami-Dade"},
			{CaseNumber: "2023-042", CaseType: "Eviction", FilingDate: "06/02/2023", Status: "Closed", County: "Broward"},
		},
		domain.RefineConfig{
			ExcludedCaseTypes: domain.DefaultExcludedCaseTypes,
			CaseAgeLimitYears: 5,
		},
		[]string{"Miami-Dade", "Broward"},
	)
	return &r
}

// setupTestServices swaps in mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	prevJobs := jobService
	prevHistory := historyService
	prevSettings := settingsService
	prevCreds := credentialsStore

	jobService = &mockJobService{
		jobID:    "job-123",
		result:   completeResponse(),
		counties: []string{"miami-dade", "broward", "new-york"},
	}
	historyService = &mockHistoryService{
		entries: []domain.HistoryEntry{{
			JobID:      "job-123",
			FirstName:  "John",
			LastName:   "Doe",
			County:     "miami-dade",
			Status:     domain.JobStatusComplete,
			TotalCases: 2,
			OpenCases:  1,
			FinishedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		}},
	}
	settingsService = &mockSettingsService{settings: domain.DefaultSettings()}
	credentialsStore = &mockCredentialsStore{}

	return func() {
		jobService = prevJobs
		historyService = prevHistory
		settingsService = prevSettings
		credentialsStore = prevCreds
	}
}
