package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

// SubmitSearchInput is the input schema for the submit_search tool.
type SubmitSearchInput struct {
	FirstName   string `json:"first_name" jsonschema:"first name of the person to search"`
	LastName    string `json:"last_name" jsonschema:"last name of the person to search"`
	MiddleName  string `json:"middle_name,omitempty" jsonschema:"optional middle name"`
	DateOfBirth string `json:"date_of_birth,omitempty" jsonschema:"optional date of birth (MM/DD/YYYY)"`
	County      string `json:"county,omitempty" jsonschema:"county key to search; empty searches all counties"`
}

// SubmitSearchOutput is the output schema for the submit_search tool.
type SubmitSearchOutput struct {
	JobID string `json:"job_id"`
}

// SearchStatusInput is the input schema for the search_status tool.
type SearchStatusInput struct {
	JobID string `json:"job_id" jsonschema:"identifier returned by submit_search"`
}

// SearchStatusOutput is the output schema for the search_status tool.
type SearchStatusOutput struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SearchResultsInput is the input schema for the search_results tool.
type SearchResultsInput struct {
	JobID string `json:"job_id" jsonschema:"identifier of a completed search job"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "submit_search",
		Description: "Submit an asynchronous civil court records search by party name. " +
			"Returns a job id to poll with search_status.",
	}, s.handleSubmitSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_status",
		Description: "Check the status of a submitted search job.",
	}, s.handleSearchStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_results",
		Description: "Fetch the refined results of a completed search job. " +
			"Fails until search_status reports complete.",
	}, s.handleSearchResults)
}

// handleSubmitSearch handles the submit_search tool invocation.
func (s *Server) handleSubmitSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitSearchInput,
) (*mcp.CallToolResult, SubmitSearchOutput, error) {
	criteria := domain.SearchCriteria{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		MiddleName:  input.MiddleName,
		DateOfBirth: input.DateOfBirth,
		County:      input.County,
	}

	jobID, err := s.ports.Jobs.Submit(ctx, criteria)
	if err != nil {
		return nil, SubmitSearchOutput{}, err
	}

	return nil, SubmitSearchOutput{JobID: jobID}, nil
}

// handleSearchStatus handles the search_status tool invocation.
func (s *Server) handleSearchStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchStatusInput,
) (*mcp.CallToolResult, SearchStatusOutput, error) {
	info, err := s.ports.Jobs.Status(ctx, input.JobID)
	if err != nil {
		return nil, SearchStatusOutput{}, err
	}

	return nil, SearchStatusOutput{
		Status:  string(info.Status),
		Message: info.Message,
	}, nil
}

// handleSearchResults handles the search_results tool invocation.
func (s *Server) handleSearchResults(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchResultsInput,
) (*mcp.CallToolResult, domain.SearchResponse, error) {
	result, err := s.ports.Jobs.Result(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotComplete) {
			return nil, domain.SearchResponse{}, errors.New("search is still running; poll search_status until complete")
		}
		return nil, domain.SearchResponse{}, err
	}

	return nil, *result, nil
}
