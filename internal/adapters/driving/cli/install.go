package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

var installCmd = &cobra.Command{
	Use:   "install [query]",
	Short: "Search for a connector and install it",
	Long: `Searches the registry for connectors matching the query, walks through
credential collection and validation, and installs the selected connector
into the host configuration.

The host picks the connector up on its next restart.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	if installWorkflow == nil {
		return errors.New("install workflow not configured")
	}

	query := strings.Join(args, " ")

	outcome, err := installWorkflow.Run(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	if !outcome.Succeeded() {
		printFailure(cmd, outcome)
		return fmt.Errorf("installation did not complete: %s", outcome.Reason)
	}

	if outcome.NoOp {
		cmd.Printf("%s is already installed; configuration left unchanged.\n",
			outcome.Record.QualifiedName)
		return nil
	}

	cmd.Printf("Installed %s (%s).\n", outcome.Record.QualifiedName, outcome.Record.Mode)
	if len(outcome.Record.Variables) > 0 {
		cmd.Printf("Configured variables: %s\n", strings.Join(outcome.Record.Variables, ", "))
	}
	if len(outcome.Tools) > 0 {
		cmd.Println("Tools available after the host restarts:")
		for _, tool := range outcome.Tools {
			cmd.Printf("  - %s\n", tool)
		}
	}
	cmd.Println("Restart the host application to activate the connector.")
	return nil
}

func printFailure(cmd *cobra.Command, outcome *domain.InstallOutcome) {
	switch outcome.Reason {
	case domain.FailureNotFound:
		cmd.Println("No connectors matched. Try a different query.")
	case domain.FailureNoSelection:
		cmd.Println("No connector selected.")
	case domain.FailureMissingCredential:
		cmd.Println("Required credentials were not provided.")
	case domain.FailureInstallError:
		cmd.Println("The install operation failed.")
	default:
		cmd.Printf("Installation failed: %s\n", outcome.Reason)
	}
}
