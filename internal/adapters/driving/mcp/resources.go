package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for courtcheck resources.
	uriScheme = "courtcheck://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the registered counties.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "counties",
		Name:        "counties",
		Description: "County keys accepted by submit_search",
		MIMEType:    "application/json",
	}, s.handleCountiesResource)
}

// handleCountiesResource returns the registered county keys.
func (s *Server) handleCountiesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	counties := s.ports.Jobs.Counties()
	if counties == nil {
		counties = []string{}
	}

	data, err := json.MarshalIndent(counties, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling counties: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
