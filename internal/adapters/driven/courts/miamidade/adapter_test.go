package miamidade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

const resultsPage = `<html><body>
<table id="caseSearchResults">
  <tr><th>Case Number</th><th>Filing Date</th><th>Parties</th><th>Type</th><th>Status</th><th>Judge</th><th>Section</th></tr>
  <tr><td>2025-001234-CC-05</td><td>02/10/2025</td><td>John Doe vs. ABC Corporation</td><td>Civil</td><td>Open</td><td>Hon. Jane Roe</td><td>CC05</td></tr>
  <tr><td>2024-009876-SP-23</td><td>11/03/2024</td><td>XYZ LLC vs. John Doe</td><td>Small Claims</td><td>Closed</td><td></td><td>SP23</td></tr>
</table>
</body></html>`

func TestSearchParsesResultGrid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Doe", r.URL.Query().Get("lastName"))
		assert.Equal(t, "John", r.URL.Query().Get("firstName"))
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	a := NewWithBaseURL(srv.URL)
	outcome, err := a.Search(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)
	require.Len(t, outcome.Cases, 2)
	assert.Empty(t, outcome.Note)

	first := outcome.Cases[0]
	assert.Equal(t, "2025-001234-CC-05", first.CaseNumber)
	assert.Equal(t, "02/10/2025", first.FilingDate)
	assert.Equal(t, "John Doe vs. ABC Corporation", first.Parties)
	assert.Equal(t, "Civil", first.CaseType)
	assert.Equal(t, "Open", first.Status)
	assert.Equal(t, "Hon. Jane Roe", first.Judge)
	assert.Equal(t, "CC05", first.Section)
	assert.Equal(t, "Miami-Dade", first.County)
	assert.NotEmpty(t, first.VerificationInstructions)
	assert.NotEmpty(t, first.SearchResultsURL)
}

func TestSearchDegradesOnChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div class="g-recaptcha"></div></body></html>`))
	}))
	defer srv.Close()

	outcome, err := NewWithBaseURL(srv.URL).Search(context.Background(),
		domain.SearchCriteria{FirstName: "John", LastName: "Doe"})

	require.NoError(t, err)
	assert.Empty(t, outcome.Cases)
	assert.Contains(t, outcome.Note, "challenge")
}

func TestSearchDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	outcome, err := NewWithBaseURL(srv.URL).Search(context.Background(),
		domain.SearchCriteria{FirstName: "John", LastName: "Doe"})

	require.NoError(t, err)
	assert.Empty(t, outcome.Cases)
	assert.NotEmpty(t, outcome.Note)
}

func TestSearchDegradesOnMissingGrid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><p>Welcome</p></body></html>`))
	}))
	defer srv.Close()

	outcome, err := NewWithBaseURL(srv.URL).Search(context.Background(),
		domain.SearchCriteria{FirstName: "John", LastName: "Doe"})

	require.NoError(t, err)
	assert.Empty(t, outcome.Cases)
	assert.NotEmpty(t, outcome.Note)
}

func TestSearchSkipsMalformedRows(t *testing.T) {
	page := `<html><body><table id="caseSearchResults">
		<tr><td>only</td><td>four</td><td>cells</td><td>here</td></tr>
		<tr><td>2025-1</td><td>02/10/2025</td><td>John Doe vs. X</td><td>Civil</td><td>Open</td></tr>
	</table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	outcome, err := NewWithBaseURL(srv.URL).Search(context.Background(),
		domain.SearchCriteria{FirstName: "John", LastName: "Doe"})

	require.NoError(t, err)
	require.Len(t, outcome.Cases, 1)
	assert.Equal(t, "2025-1", outcome.Cases[0].CaseNumber)
}

func TestSearchErrorsOnMisconfiguration(t *testing.T) {
	a := NewWithBaseURL("")

	_, err := a.Search(context.Background(), domain.SearchCriteria{FirstName: "John", LastName: "Doe"})
	assert.Error(t, err)
}

func TestIdentity(t *testing.T) {
	a := New()
	assert.Equal(t, "miami-dade", a.County())
	assert.Equal(t, "Miami-Dade", a.DisplayName())
}
