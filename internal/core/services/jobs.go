package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
	"github.com/custodia-labs/courtcheck/internal/logger"
)

// Ensure JobService implements the interface.
var _ driving.JobService = (*JobService)(nil)

// JobService owns the search job lifecycle: it validates criteria, fans
// the search out across county adapters in a background goroutine, tracks
// pollable progress, and assembles the final response.
//
// One goroutine per submitted job; the job store provides the
// synchronisation between that goroutine and concurrent pollers. There is
// no cancellation of in-flight jobs and no job eviction - both deliberate
// simplifications for a low-concurrency internal tool.
type JobService struct {
	store    driven.JobStore
	registry driven.AdapterRegistry
	history  driven.HistoryStore
	settings driving.SettingsService

	// now is swappable for tests.
	now func() time.Time
}

// NewJobService creates a job service. The history store may be nil, in
// which case no audit trail is recorded.
func NewJobService(
	store driven.JobStore,
	registry driven.AdapterRegistry,
	history driven.HistoryStore,
	settings driving.SettingsService,
) *JobService {
	return &JobService{
		store:    store,
		registry: registry,
		history:  history,
		settings: settings,
		now:      time.Now,
	}
}

// Submit validates the criteria and starts a background search, returning
// the job id immediately. Invalid criteria fail synchronously and create
// no job.
func (s *JobService) Submit(ctx context.Context, criteria domain.SearchCriteria) (string, error) {
	criteria = criteria.Normalise()
	if err := criteria.Validate(); err != nil {
		return "", err
	}

	settings := s.currentSettings()

	job := domain.Job{
		ID:        uuid.NewString(),
		Criteria:  criteria,
		Status:    domain.JobStatusRunning,
		Message:   "Starting search...",
		Refine:    settings.RefineConfig(),
		StartedAt: s.now(),
	}
	if err := s.store.Create(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	logger.Info("Job %s submitted for %s", job.ID, criteria.FullName())
	go s.run(job, settings)

	return job.ID, nil
}

// Status returns the job's state and most recent progress message.
func (s *JobService) Status(ctx context.Context, id string) (domain.JobStatusInfo, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.JobStatusInfo{}, err
	}
	return domain.JobStatusInfo{Status: job.Status, Message: job.Message}, nil
}

// Result assembles the response for a completed job. Assembly is pure and
// the job record is immutable once terminal, so repeated calls return
// identical payloads.
func (s *JobService) Result(ctx context.Context, id string) (*domain.SearchResponse, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusComplete {
		return nil, fmt.Errorf("%w: job is %s", domain.ErrJobNotComplete, job.Status)
	}

	resp := domain.AssembleResponse(job.Criteria, job.Cases, job.Refine, job.SearchedCounties)
	return &resp, nil
}

// Counties returns the registered county keys in registration order.
func (s *JobService) Counties() []string {
	return s.registry.Counties()
}

// run executes the search in the background. Adapter-level failures are
// absorbed per the adapter contract; anything unexpected here, including
// a panic, becomes the job's terminal error.
func (s *JobService) run(job domain.Job, settings domain.Settings) {
	// The job outlives any caller, so the background work runs under its
	// own context. In-flight jobs are never cancelled.
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Job %s panicked: %v", job.ID, r)
			s.finish(ctx, job, domain.JobTerminal{
				Status:  domain.JobStatusError,
				Message: "Search failed unexpectedly",
				Err:     fmt.Sprintf("internal error: %v", r),
			})
		}
	}()

	adapters, err := s.selectAdapters(job.Criteria, settings)
	if err != nil {
		s.finish(ctx, job, domain.JobTerminal{
			Status:  domain.JobStatusError,
			Message: fmt.Sprintf("Error: %v", err),
			Err:     err.Error(),
		})
		return
	}

	// Courtesy throttle between county sites. The first adapter runs
	// immediately; each subsequent one waits out the interval.
	delay := settings.CourtesyDelay
	if delay <= 0 {
		delay = time.Nanosecond
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)

	var (
		accumulated []domain.CourtCase
		searched    []string
	)

	for _, adapter := range adapters {
		if err := limiter.Wait(ctx); err != nil {
			break // only possible on context cancellation
		}

		s.progress(ctx, job.ID, fmt.Sprintf("Searching %s County...", adapter.DisplayName()))
		logger.Section(adapter.DisplayName())

		outcome, err := adapter.Search(ctx, job.Criteria)
		if err != nil {
			// Unrecoverable adapter condition: terminal for this run.
			logger.Warn("Adapter %s failed: %v", adapter.County(), err)
			s.finish(ctx, job, domain.JobTerminal{
				Status:  domain.JobStatusError,
				Message: fmt.Sprintf("Error searching %s County: %v", adapter.DisplayName(), err),
				Err:     fmt.Sprintf("%s: %v", adapter.County(), err),
			})
			return
		}

		if outcome.Note != "" {
			s.progress(ctx, job.ID, fmt.Sprintf("%s County: %s", adapter.DisplayName(), outcome.Note))
		}

		// Refine per adapter so one county's malformed output cannot
		// corrupt another's contribution.
		refined := domain.Refine(outcome.Cases, job.Criteria, job.Refine, s.now())
		accumulated = append(accumulated, refined...)
		searched = append(searched, adapter.DisplayName())

		logger.Info("%s: %d raw, %d relevant", adapter.County(), len(outcome.Cases), len(refined))
		s.progress(ctx, job.ID, fmt.Sprintf("Searched %s County: %d relevant case(s)",
			adapter.DisplayName(), len(refined)))
	}

	// Global re-sort so the final ordering is independent of adapter
	// execution order.
	domain.SortCases(accumulated)

	s.finish(ctx, job, domain.JobTerminal{
		Status:           domain.JobStatusComplete,
		Cases:            accumulated,
		SearchedCounties: searched,
		Message:          "Search complete",
	})
}

// selectAdapters resolves the adapter set for the criteria, applying the
// enabled-counties setting on "search all".
func (s *JobService) selectAdapters(criteria domain.SearchCriteria, settings domain.Settings) ([]driven.CountyAdapter, error) {
	adapters, err := s.registry.Resolve(criteria.County)
	if err != nil {
		return nil, err
	}

	if criteria.County != "" || len(settings.EnabledCounties) == 0 {
		return adapters, nil
	}

	enabled := make(map[string]bool, len(settings.EnabledCounties))
	for _, c := range settings.EnabledCounties {
		enabled[c] = true
	}

	selected := adapters[:0]
	for _, a := range adapters {
		if enabled[a.County()] {
			selected = append(selected, a)
		}
	}
	return selected, nil
}

// progress updates the job's message; failures are logged, never fatal.
func (s *JobService) progress(ctx context.Context, id, message string) {
	if err := s.store.SetProgress(ctx, id, message); err != nil {
		logger.Warn("Job %s: set progress: %v", id, err)
	}
}

// finish performs the terminal transition and records the audit entry.
// The store rejects a second terminal write, so concurrent completion
// attempts (e.g. a panic during finish) cannot overwrite each other.
func (s *JobService) finish(ctx context.Context, job domain.Job, terminal domain.JobTerminal) {
	if err := s.store.SetTerminal(ctx, job.ID, terminal); err != nil {
		logger.Warn("Job %s: terminal transition: %v", job.ID, err)
		return
	}

	s.recordHistory(ctx, job, terminal)
}

// recordHistory appends the terminal outcome to the audit trail.
// Best-effort: a history failure never affects job state.
func (s *JobService) recordHistory(ctx context.Context, job domain.Job, terminal domain.JobTerminal) {
	if s.history == nil {
		return
	}

	open := 0
	for _, c := range terminal.Cases {
		if c.IsOpen() {
			open++
		}
	}

	entry := domain.HistoryEntry{
		JobID:      job.ID,
		FirstName:  job.Criteria.FirstName,
		LastName:   job.Criteria.LastName,
		County:     job.Criteria.County,
		Status:     terminal.Status,
		TotalCases: len(terminal.Cases),
		OpenCases:  open,
		Err:        terminal.Err,
		StartedAt:  job.StartedAt,
		FinishedAt: s.now(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("Job %s: record history: %v", job.ID, err)
	}
}

// currentSettings reads settings, falling back to defaults when the
// settings service is absent or failing.
func (s *JobService) currentSettings() domain.Settings {
	if s.settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("Settings unavailable, using defaults: %v", err)
		return domain.DefaultSettings()
	}
	return settings
}
