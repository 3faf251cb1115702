package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*HistoryStore, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "courtcheck-test-*")
	require.NoError(t, err)

	store, err := NewHistoryStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testEntry(jobID string, finishedAt time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		JobID:      jobID,
		FirstName:  "John",
		LastName:   "Doe",
		County:     "miami-dade",
		Status:     domain.JobStatusComplete,
		TotalCases: 3,
		OpenCases:  1,
		StartedAt:  finishedAt.Add(-10 * time.Second),
		FinishedAt: finishedAt,
	}
}

func TestHistoryStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "history.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.Record(ctx, testEntry("job-1", now)))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "job-1", e.JobID)
	assert.Equal(t, "John", e.FirstName)
	assert.Equal(t, "Doe", e.LastName)
	assert.Equal(t, "miami-dade", e.County)
	assert.Equal(t, domain.JobStatusComplete, e.Status)
	assert.Equal(t, 3, e.TotalCases)
	assert.Equal(t, 1, e.OpenCases)
	assert.True(t, e.FinishedAt.Equal(now), "finished_at should round-trip")
}

func TestHistoryStore_ListNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		entry := testEntry(fmt.Sprintf("job-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.Record(ctx, entry))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "job-4", entries[0].JobID)
	assert.Equal(t, "job-3", entries[1].JobID)
	assert.Equal(t, "job-2", entries[2].JobID)
}

func TestHistoryStore_ListEmptyDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryStore_RecordsErroredJob(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	entry := testEntry("job-err", time.Now().UTC())
	entry.Status = domain.JobStatusError
	entry.TotalCases = 0
	entry.OpenCases = 0
	entry.Err = "county search failed: connection refused"
	require.NoError(t, store.Record(ctx, entry))

	entries, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.JobStatusError, entries[0].Status)
	assert.Contains(t, entries[0].Err, "connection refused")
}

func TestHistoryStore_PersistsAcrossInstances(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "courtcheck-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	ctx := context.Background()

	store1, err := NewHistoryStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store1.Record(ctx, testEntry("job-1", time.Now().UTC())))
	require.NoError(t, store1.Close())

	store2, err := NewHistoryStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	entries, err := store2.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "job-1", entries[0].JobID)
}
