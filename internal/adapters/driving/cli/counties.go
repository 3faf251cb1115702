package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List registered counties",
	Long:  `Lists the county keys accepted by the --county flag, in registration order.`,
	RunE:  runCounties,
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}

func runCounties(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return errors.New("job service not configured")
	}

	counties := jobService.Counties()
	if len(counties) == 0 {
		cmd.Println("No counties registered.")
		return nil
	}

	cmd.Println("Registered counties:")
	for _, key := range counties {
		cmd.Printf("  %s\n", key)
	}
	return nil
}
