// Package cli provides the courtcheck command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/courtcheck/internal/core/ports/driven"
	"github.com/custodia-labs/courtcheck/internal/core/ports/driving"
	"github.com/custodia-labs/courtcheck/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by main before Execute.
var (
	jobService       driving.JobService
	historyService   driving.HistoryService
	settingsService  driving.SettingsService
	credentialsStore driven.CredentialsStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "courtcheck",
	Short: "Civil court records search for tenant screening",
	Long: `courtcheck searches county civil court records by party name and
refines the raw results into a screening-ready report: irrelevant case
types filtered out, stale cases dropped, party names matched, and open
cases surfaced first.

Searches run asynchronously; the CLI submits a job and polls until it
finishes. Results are advisory and must be verified with official court
records before any decision is made.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services bundles everything the commands need.
type Services struct {
	Jobs        driving.JobService
	History     driving.HistoryService
	Settings    driving.SettingsService
	Credentials driven.CredentialsStore
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	jobService = s.Jobs
	historyService = s.History
	settingsService = s.Settings
	credentialsStore = s.Credentials
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
