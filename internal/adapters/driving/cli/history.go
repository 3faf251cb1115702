package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Shows the local search audit trail, newest first. Only terminal
outcomes are recorded; results themselves are not persisted.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}

	cmd.Println("Recent searches:")
	cmd.Println()
	for _, e := range entries {
		county := e.County
		if county == "" {
			county = "all counties"
		}
		cmd.Printf("  %s  %s %s (%s)\n",
			e.FinishedAt.Local().Format("2006-01-02 15:04"), e.FirstName, e.LastName, county)
		if e.Status == domain.JobStatusError {
			cmd.Printf("      failed: %s\n", e.Err)
			continue
		}
		cmd.Printf("      %d cases, %d open\n", e.TotalCases, e.OpenCases)
	}
	return nil
}
