package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [first name] [last name]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search civil court records by party name", searchCmd.Short)
}

func TestSearchCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "John"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSearchCmd_HasCountyFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("county")
	require.NotNil(t, flag, "county flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
}

func TestSearchCmd_ExecutesAndRendersReport(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Total cases: 2 (open: 1, closed: 1)")
	assert.Contains(t, out, "2025-001")
	assert.Contains(t, out, domain.ResponseNote)
	assert.Contains(t, out, domain.OfficialVerificationURL)
}

func TestSearchCmd_PassesFlagsToCriteria(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe",
		"--county", "broward", "--middle", "Q", "--dob", "01/02/1990"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchCounty, searchMiddle, searchDOB = "", "", ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	mock := jobService.(*mockJobService)
	require.Len(t, mock.submitted, 1)
	assert.Equal(t, "broward", mock.submitted[0].County)
	assert.Equal(t, "Q", mock.submitted[0].MiddleName)
	assert.Equal(t, "01/02/1990", mock.submitted[0].DateOfBirth)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"search_criteria"`)
	assert.Contains(t, out, `"total_cases": 2`)
}

func TestSearchCmd_EchoesProgressMessages(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	jobService.(*mockJobService).statuses = []domain.JobStatusInfo{
		{Status: domain.JobStatusRunning, Message: "Searching Miami-Dade County..."},
		{Status: domain.JobStatusComplete, Message: "Search complete. Found 2 relevant case(s)."},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Searching Miami-Dade County...")
}

func TestSearchCmd_ReportsJobFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	jobService.(*mockJobService).statuses = []domain.JobStatusInfo{
		{Status: domain.JobStatusError, Message: "Broward County search failed: timeout"},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broward County search failed")
}

func TestSearchCmd_InvalidInputSurfaced(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	jobService.(*mockJobService).submitErr = domain.ErrInvalidInput

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "John", "Doe"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
