package mcp

import (
	"context"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// mockJobService is a mock implementation of driving.JobService.
type mockJobService struct {
	jobID     string
	submitErr error

	status    domain.JobStatusInfo
	statusErr error

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

func (m *mockJobService) Status(_ context.Context, _ string) (domain.JobStatusInfo, error) {
	return m.status, m.statusErr
}

func (m *mockJobService) Result(_ context.Context, _ string) (*domain.SearchResponse, error) {
	return m.result, m.resultErr
}

func (m *mockJobService) Counties() []string {
	return m.counties
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}
