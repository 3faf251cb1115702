package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/courtcheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockAdapter implements driven.CountyAdapter with canned behaviour.
type mockAdapter struct {
	key     string
	name    string
	outcome driven.SearchOutcome
	err     error
	panics  bool

	mu    sync.Mutex
	calls int
}

func (a *mockAdapter) County() string      { return a.key }
func (a *mockAdapter) DisplayName() string { return a.name }

func (a *mockAdapter) Search(_ context.Context, _ domain.SearchCriteria) (driven.SearchOutcome, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.panics {
		panic("adapter blew up")
	}
	return a.outcome, a.err
}

func (a *mockAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// mockSettings implements driving.SettingsService with a fast courtesy
// delay so tests do not sleep.
type mockSettings struct {
	settings domain.Settings
	err      error
}

func (m *mockSettings) Get() (domain.Settings, error) {
	if m.err != nil {
		return domain.Settings{}, m.err
	}
	return m.settings, nil
}
func (m *mockSettings) Save(domain.Settings) error   { return nil }
func (m *mockSettings) GetDefaults() domain.Settings { return domain.DefaultSettings() }

func fastSettings() *mockSettings {
	s := domain.DefaultSettings()
	s.CourtesyDelay = time.Millisecond
	return &mockSettings{settings: s}
}

// mockHistoryStore records entries in memory.
type mockHistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryStore) Record(_ context.Context, e domain.HistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockHistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	return append([]domain.HistoryEntry(nil), m.entries[:limit]...), nil
}

func (m *mockHistoryStore) Close() error { return nil }

func (m *mockHistoryStore) recorded() []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.HistoryEntry(nil), m.entries...)
}

// --- Helpers ---

func registryWith(adapters ...*mockAdapter) *AdapterRegistry {
	r := NewAdapterRegistry()
	for _, a := range adapters {
		adapter := a
		r.Register(adapter.key, func() driven.CountyAdapter { return adapter })
	}
	return r
}

func waitTerminal(t *testing.T, svc *JobService, id string) domain.JobStatusInfo {
	t.Helper()
	var info domain.JobStatusInfo
	require.Eventually(t, func() bool {
		var err error
		info, err = svc.Status(context.Background(), id)
		require.NoError(t, err)
		return info.Status.IsTerminal()
	}, 5*time.Second, 5*time.Millisecond)
	return info
}

func openCivilCase(parties string) domain.RawCase {
	return domain.RawCase{
		CaseNumber: "2025-CC-000123",
		CaseType:   "Civil",
		FilingDate: time.Now().AddDate(0, -6, 0).Format("01/02/2006"),
		Status:     "Open",
		County:     "Miami-Dade",
		Parties:    parties,
	}
}

// --- Tests ---

func TestSubmitRejectsInvalidCriteria(t *testing.T) {
	store := memory.NewJobStore()
	svc := NewJobService(store, registryWith(), nil, fastSettings())

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
	}{
		{"missing first name", domain.SearchCriteria{LastName: "Doe"}},
		{"missing last name", domain.SearchCriteria{FirstName: "John"}},
		{"blank first name", domain.SearchCriteria{FirstName: "   ", LastName: "Doe"}},
		{"blank last name", domain.SearchCriteria{FirstName: "John", LastName: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.criteria)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// No job was created for any rejected submission.
	assert.Equal(t, 0, store.Len())
}

func TestSubmitReturnsImmediately(t *testing.T) {
	slow := &mockAdapter{key: "miami-dade", name: "Miami-Dade"}
	svc := NewJobService(memory.NewJobStore(), registryWith(slow), nil, fastSettings())

	start := time.Now()
	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Less(t, time.Since(start), time.Second)

	waitTerminal(t, svc, id)
}

func TestStatusUnknownJob(t *testing.T) {
	svc := NewJobService(memory.NewJobStore(), registryWith(), nil, fastSettings())

	_, err := svc.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResultBeforeCompletion(t *testing.T) {
	store := memory.NewJobStore()
	svc := NewJobService(store, registryWith(), nil, fastSettings())
	require.NoError(t, store.Create(context.Background(), domain.Job{
		ID:     "running-job",
		Status: domain.JobStatusRunning,
	}))

	_, err := svc.Result(context.Background(), "running-job")
	assert.ErrorIs(t, err, domain.ErrJobNotComplete)
}

func TestEndToEndSearch(t *testing.T) {
	// One adapter returns an excluded-type case, the other an open civil
	// case; the assembled response contains only the civil case.
	excluded := &mockAdapter{
		key:  "broward",
		name: "Broward",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{{
			CaseNumber: "2025-CF-000999",
			CaseType:   "Criminal Felony",
			FilingDate: "01/15/2025",
			Status:     "Open",
			Parties:    "State vs. John Doe",
		}}},
	}
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}

	history := &mockHistoryStore{}
	svc := NewJobService(memory.NewJobStore(), registryWith(excluded, civil), history, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	require.Equal(t, domain.JobStatusComplete, info.Status)

	resp, err := svc.Result(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.TotalCases)
	assert.Equal(t, 1, resp.Summary.OpenCases)
	assert.Equal(t, 0, resp.Summary.ClosedCases)
	assert.True(t, resp.Summary.HasOpenCases)
	require.Len(t, resp.Cases, 1)
	assert.Equal(t, "Civil", resp.Cases[0].CaseType)
	assert.Equal(t, []string{"Broward", "Miami-Dade"}, resp.Metadata.SearchedCounties)

	// Both adapters were invoked exactly once.
	assert.Equal(t, 1, excluded.callCount())
	assert.Equal(t, 1, civil.callCount())

	// History captured the terminal outcome.
	entries := history.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].JobID)
	assert.Equal(t, domain.JobStatusComplete, entries[0].Status)
	assert.Equal(t, 1, entries[0].TotalCases)
	assert.Equal(t, 1, entries[0].OpenCases)
}

func TestResultIsIdempotent(t *testing.T) {
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}
	svc := NewJobService(memory.NewJobStore(), registryWith(civil), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)
	waitTerminal(t, svc, id)

	first, err := svc.Result(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.Result(context.Background(), id)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSingleCountySelection(t *testing.T) {
	miami := &mockAdapter{key: "miami-dade", name: "Miami-Dade"}
	broward := &mockAdapter{key: "broward", name: "Broward"}
	svc := NewJobService(memory.NewJobStore(), registryWith(miami, broward), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{
		FirstName: "John", LastName: "Doe", County: "broward",
	})
	require.NoError(t, err)
	waitTerminal(t, svc, id)

	assert.Equal(t, 0, miami.callCount())
	assert.Equal(t, 1, broward.callCount())
}

func TestUnknownCountyFailsJobNotSubmit(t *testing.T) {
	// Resolution happens in the background task; the submitter has
	// already received a job id, so the failure surfaces via polling.
	svc := NewJobService(memory.NewJobStore(), registryWith(), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{
		FirstName: "John", LastName: "Doe", County: "duval",
	})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	assert.Equal(t, domain.JobStatusError, info.Status)
	assert.Contains(t, info.Message, "duval")
}

func TestAdapterGracefulFailureDoesNotFailJob(t *testing.T) {
	blocked := &mockAdapter{
		key:     "broward",
		name:    "Broward",
		outcome: driven.SearchOutcome{Note: "anti-automation challenge detected"},
	}
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}
	svc := NewJobService(memory.NewJobStore(), registryWith(blocked, civil), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	require.Equal(t, domain.JobStatusComplete, info.Status)

	resp, err := svc.Result(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.TotalCases)
	// The blocked county still counts as searched.
	assert.Equal(t, []string{"Broward", "Miami-Dade"}, resp.Metadata.SearchedCounties)
}

func TestAdapterErrorTerminatesJob(t *testing.T) {
	broken := &mockAdapter{
		key:  "broward",
		name: "Broward",
		err:  errors.New("subscriber credentials store unreadable"),
	}
	after := &mockAdapter{key: "miami-dade", name: "Miami-Dade"}
	history := &mockHistoryStore{}
	svc := NewJobService(memory.NewJobStore(), registryWith(broken, after), history, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	assert.Equal(t, domain.JobStatusError, info.Status)
	assert.Contains(t, info.Message, "Broward")

	// No partial results for an errored job.
	_, err = svc.Result(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrJobNotComplete)

	// Remaining adapters are not invoked.
	assert.Equal(t, 0, after.callCount())

	entries := history.recorded()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.JobStatusError, entries[0].Status)
	assert.NotEmpty(t, entries[0].Err)
}

func TestPanicInBackgroundBecomesTerminalError(t *testing.T) {
	exploding := &mockAdapter{key: "miami-dade", name: "Miami-Dade", panics: true}
	svc := NewJobService(memory.NewJobStore(), registryWith(exploding), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	assert.Equal(t, domain.JobStatusError, info.Status)
}

func TestPollingNeverObservesMixedTerminalState(t *testing.T) {
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}
	store := memory.NewJobStore()
	svc := NewJobService(store, registryWith(civil), nil, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	transitions := 0
	var last domain.JobStatus
	require.Eventually(t, func() bool {
		job, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, len(job.Cases) > 0 && job.Err != "",
			"result and error must be mutually exclusive")
		if job.Status != last {
			if job.Status.IsTerminal() {
				transitions++
			}
			last = job.Status
		}
		return job.Status.IsTerminal()
	}, 5*time.Second, time.Millisecond)

	assert.Equal(t, 1, transitions)
}

func TestHistoryFailureDoesNotAffectJob(t *testing.T) {
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}
	history := &mockHistoryStore{err: errors.New("disk full")}
	svc := NewJobService(memory.NewJobStore(), registryWith(civil), history, fastSettings())

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	assert.Equal(t, domain.JobStatusComplete, info.Status)
}

func TestEnabledCountiesRestrictSearchAll(t *testing.T) {
	miami := &mockAdapter{key: "miami-dade", name: "Miami-Dade"}
	broward := &mockAdapter{key: "broward", name: "Broward"}

	s := domain.DefaultSettings()
	s.CourtesyDelay = time.Millisecond
	s.EnabledCounties = []string{"broward"}
	svc := NewJobService(memory.NewJobStore(), registryWith(miami, broward), nil, &mockSettings{settings: s})

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)
	waitTerminal(t, svc, id)

	assert.Equal(t, 0, miami.callCount())
	assert.Equal(t, 1, broward.callCount())
}

func TestSettingsFailureFallsBackToDefaults(t *testing.T) {
	civil := &mockAdapter{
		key:     "miami-dade",
		name:    "Miami-Dade",
		outcome: driven.SearchOutcome{Cases: []domain.RawCase{openCivilCase("John Doe vs. ABC Corporation")}},
	}
	svc := NewJobService(memory.NewJobStore(), registryWith(civil),
		nil, &mockSettings{err: errors.New("config unreadable")})

	id, err := svc.Submit(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	info := waitTerminal(t, svc, id)
	require.Equal(t, domain.JobStatusComplete, info.Status)

	resp, err := svc.Result(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCaseAgeLimitYears, resp.SearchCriteria.SearchPeriodYears)
}
