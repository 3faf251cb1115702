package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/courtcheck/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the local HTTP API for integrations that poll over HTTP.

Endpoints:
  POST /api/search         submit a search, responds 202 with {"job_id"}
  GET  /api/status/{id}    poll job status
  GET  /api/results/{id}   fetch results once complete
  GET  /api/counties       list registered counties`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return errors.New("job service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := httpapi.NewServer(jobService)
	if err != nil {
		return err
	}

	addr := httpapi.Addr(port)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://localhost%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
