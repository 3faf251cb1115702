package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/courtcheck/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage county subscriber credentials",
	Long: `Some counties gate their case search behind registered subscriber
access. Stored credentials are used automatically by those counties;
without them the county is skipped with a note.

Credentials are stored locally with owner-only file permissions.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set [county]",
	Short: "Store subscriber credentials for a county",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSet,
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove [county]",
	Short: "Remove stored credentials for a county",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthRemove,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authRemoveCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}
	county := args[0]

	cmd.Print("Username: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)

	password, err := readPassword(cmd)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	creds := domain.Credentials{
		County:   county,
		Username: username,
		Password: password,
	}
	if err := credentialsStore.Save(cmd.Context(), creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	cmd.Printf("Credentials stored for %s.\n", county)
	return nil
}

// readPassword reads without echo when stdin is a terminal, falling back
// to a plain line read otherwise (tests, pipes).
func readPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Password: ")
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		defer cmd.Println()
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	if credentialsStore == nil {
		return errors.New("credentials store not configured")
	}
	county := args[0]

	if err := credentialsStore.Delete(cmd.Context(), county); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}

	cmd.Printf("Credentials removed for %s.\n", county)
	return nil
}
