package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage search settings",
	Long: `View and configure the result refinement settings: excluded case
types, the case age limit, the courtesy delay between counties, and
which counties a search of all covers.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsExcludeCmd = &cobra.Command{
	Use:   "exclude [case type]...",
	Short: "Set the excluded case types",
	Long: `Replaces the excluded case type list. Matching is case-insensitive
and substring-tolerant in both directions. Pass no arguments to reset
to the defaults.`,
	RunE: runSettingsExclude,
}

var settingsAgeLimitCmd = &cobra.Command{
	Use:   "age-limit [years]",
	Short: "Set the case age limit in years",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAgeLimit,
}

var settingsDelayCmd = &cobra.Command{
	Use:   "delay [duration]",
	Short: "Set the courtesy delay between county searches",
	Long:  `Sets the pause between consecutive county searches, e.g. "2s" or "1500ms".`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDelay,
}

var settingsCountiesCmd = &cobra.Command{
	Use:   "counties [county]...",
	Short: "Set which counties a search of all covers",
	Long: `Limits a search without --county to the listed counties. Pass no
arguments to cover every registered county again.`,
	RunE: runSettingsCounties,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsExcludeCmd)
	settingsCmd.AddCommand(settingsAgeLimitCmd)
	settingsCmd.AddCommand(settingsDelayCmd)
	settingsCmd.AddCommand(settingsCountiesCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Refinement]")
	cmd.Printf("  Excluded case types: %s\n", strings.Join(settings.ExcludedCaseTypes, ", "))
	cmd.Printf("  Case age limit: %d years\n", settings.CaseAgeLimitYears)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Courtesy delay: %s\n", settings.CourtesyDelay)
	if len(settings.EnabledCounties) == 0 {
		cmd.Printf("  Enabled counties: all registered\n")
	} else {
		cmd.Printf("  Enabled counties: %s\n", strings.Join(settings.EnabledCounties, ", "))
	}
	return nil
}

func runSettingsExclude(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if len(args) == 0 {
		settings.ExcludedCaseTypes = settingsService.GetDefaults().ExcludedCaseTypes
	} else {
		settings.ExcludedCaseTypes = args
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Excluded case types: %s\n", strings.Join(settings.ExcludedCaseTypes, ", "))
	return nil
}

func runSettingsAgeLimit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	years, err := strconv.Atoi(args[0])
	if err != nil || years < 1 {
		return fmt.Errorf("invalid age limit %q: must be a positive number of years", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.CaseAgeLimitYears = years

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Case age limit set to %d years.\n", years)
	return nil
}

func runSettingsDelay(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	delay, err := time.ParseDuration(args[0])
	if err != nil || delay < 0 {
		return fmt.Errorf("invalid delay %q: use a duration like 2s", args[0])
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.CourtesyDelay = delay

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Courtesy delay set to %s.\n", delay)
	return nil
}

func runSettingsCounties(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.EnabledCounties = args

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if len(args) == 0 {
		cmd.Println("Searches without --county now cover all registered counties.")
	} else {
		cmd.Printf("Searches without --county now cover: %s\n", strings.Join(args, ", "))
	}
	return nil
}
