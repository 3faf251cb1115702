package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

var (
	searchCounty string
	searchMiddle string
	searchDOB    string
	searchJSON   bool
	searchWait   time.Duration
)

// pollInterval is how often the CLI asks for job status.
const pollInterval = 500 * time.Millisecond

var searchCmd = &cobra.Command{
	Use:   "search [first name] [last name]",
	Short: "Search civil court records by party name",
	Long: `Submits an asynchronous search of county civil court records and
waits for it to finish, printing progress along the way.

By default all registered counties are searched. Use --county to limit
the search to one county.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCounty, "county", "c", "", "county to search (default: all)")
	searchCmd.Flags().StringVarP(&searchMiddle, "middle", "m", "", "middle name")
	searchCmd.Flags().StringVar(&searchDOB, "dob", "", "date of birth (MM/DD/YYYY)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the full result as JSON")
	searchCmd.Flags().DurationVar(&searchWait, "wait", 5*time.Minute, "maximum time to wait for the search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return errors.New("job service not configured")
	}

	criteria := domain.SearchCriteria{
		FirstName:   args[0],
		LastName:    args[1],
		MiddleName:  searchMiddle,
		DateOfBirth: searchDOB,
		County:      searchCounty,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), searchWait)
	defer cancel()

	jobID, err := jobService.Submit(ctx, criteria)
	if err != nil {
		return fmt.Errorf("submit search: %w", err)
	}

	if err := pollUntilTerminal(ctx, cmd, jobID); err != nil {
		return err
	}

	result, err := jobService.Result(ctx, jobID)
	if err != nil {
		return fmt.Errorf("fetch result: %w", err)
	}

	if searchJSON {
		return outputResultJSON(cmd, result)
	}
	return outputResultReport(cmd, result)
}

// pollUntilTerminal polls job status, echoing progress messages as they
// change, until the job completes or errors.
func pollUntilTerminal(ctx context.Context, cmd *cobra.Command, jobID string) error {
	var lastMessage string
	for {
		info, err := jobService.Status(ctx, jobID)
		if err != nil {
			return fmt.Errorf("poll status: %w", err)
		}

		if info.Message != "" && info.Message != lastMessage {
			cmd.Println(info.Message)
			lastMessage = info.Message
		}

		switch info.Status {
		case domain.JobStatusComplete:
			return nil
		case domain.JobStatusError:
			return fmt.Errorf("search failed: %s", info.Message)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("search timed out: %w", ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

func outputResultJSON(cmd *cobra.Command, result *domain.SearchResponse) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultReport(cmd *cobra.Command, result *domain.SearchResponse) error {
	cmd.Println()
	cmd.Printf("Search: %s %s", result.SearchCriteria.FirstName, result.SearchCriteria.LastName)
	if result.SearchCriteria.County != "" {
		cmd.Printf(" (%s)", result.SearchCriteria.County)
	}
	cmd.Println()
	cmd.Printf("Counties searched: %d, period: last %d years\n",
		len(result.Metadata.SearchedCounties), result.SearchCriteria.SearchPeriodYears)
	cmd.Println()

	cmd.Printf("Total cases: %d (open: %d, closed: %d)\n",
		result.Summary.TotalCases, result.Summary.OpenCases, result.Summary.ClosedCases)

	if result.Summary.TotalCases == 0 {
		cmd.Println("No relevant cases found.")
	}
	cmd.Println()

	for i, c := range result.Cases {
		marker := " "
		if c.IsOpen() {
			marker = "!"
		}
		cmd.Printf("%s [%d] %s (%s)\n", marker, i+1, c.CaseNumber, c.CaseType)
		cmd.Printf("      County: %s  Filed: %s  Status: %s\n", c.County, c.FilingDate, c.Status)
		if c.Parties != "" {
			cmd.Printf("      Parties: %s\n", c.Parties)
		}
		// Open cases carry extra detail for follow-up.
		if c.IsOpen() {
			if c.Judge != "" {
				cmd.Printf("      Judge: %s\n", c.Judge)
			}
			if c.Amount != "" {
				cmd.Printf("      Amount: %s\n", c.Amount)
			}
			if c.VerificationInstructions != "" {
				cmd.Printf("      Verify: %s\n", c.VerificationInstructions)
			}
		}
		cmd.Println()
	}

	cmd.Println(result.Metadata.Note)
	cmd.Printf("Official verification: %s\n", result.Metadata.OfficialVerificationURL)
	return nil
}
