package domain

// Advisory constants attached to every assembled response.
const (
	// ResponseNote reminds consumers that results are advisory.
	ResponseNote = "Results are for preliminary due diligence only. Always verify with official court records."

	// OfficialVerificationURL points at the official records portal.
	OfficialVerificationURL = "https://www.myflcourtaccess.com"
)

// SearchResponse is the assembled result payload for a completed job.
// Field names are the wire contract and must be preserved exactly.
type SearchResponse struct {
	SearchCriteria ResponseCriteria `json:"search_criteria"`
	Summary        ResponseSummary  `json:"summary"`
	Cases          []CourtCase      `json:"cases"`
	Metadata       ResponseMetadata `json:"metadata"`
}

// ResponseCriteria echoes the submitted criteria back to the caller.
type ResponseCriteria struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	MiddleName        string `json:"middle_name"`
	DateOfBirth       string `json:"date_of_birth"`
	County            string `json:"county"`
	SearchPeriodYears int    `json:"search_period_years"`
}

// ResponseSummary carries the headline counts.
type ResponseSummary struct {
	TotalCases   int  `json:"total_cases"`
	OpenCases    int  `json:"open_cases"`
	ClosedCases  int  `json:"closed_cases"`
	HasOpenCases bool `json:"has_open_cases"`
}

// ResponseMetadata describes how the result set was produced.
type ResponseMetadata struct {
	SearchedCounties        []string `json:"searched_counties"`
	Exclusions              []string `json:"exclusions"`
	Note                    string   `json:"note"`
	OfficialVerificationURL string   `json:"official_verification_url"`
}

// AssembleResponse builds the final payload from a completed job's case
// list and original criteria. Pure and side-effect-free; this is the only
// place the wire shape is constructed.
func AssembleResponse(criteria SearchCriteria, cases []CourtCase, cfg RefineConfig, searchedCounties []string) SearchResponse {
	open := 0
	for _, c := range cases {
		if c.IsOpen() {
			open++
		}
	}

	if cases == nil {
		cases = []CourtCase{}
	}
	if searchedCounties == nil {
		searchedCounties = []string{}
	}
	exclusions := cfg.ExcludedCaseTypes
	if exclusions == nil {
		exclusions = []string{}
	}

	return SearchResponse{
		SearchCriteria: ResponseCriteria{
			FirstName:         criteria.FirstName,
			LastName:          criteria.LastName,
			MiddleName:        criteria.MiddleName,
			DateOfBirth:       criteria.DateOfBirth,
			County:            criteria.County,
			SearchPeriodYears: cfg.CaseAgeLimitYears,
		},
		Summary: ResponseSummary{
			TotalCases:   len(cases),
			OpenCases:    open,
			ClosedCases:  len(cases) - open,
			HasOpenCases: open > 0,
		},
		Cases: cases,
		Metadata: ResponseMetadata{
			SearchedCounties:        searchedCounties,
			Exclusions:              exclusions,
			Note:                    ResponseNote,
			OfficialVerificationURL: OfficialVerificationURL,
		},
	}
}
