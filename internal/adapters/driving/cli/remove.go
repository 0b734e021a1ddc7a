package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

var removeCmd = &cobra.Command{
	Use:     "remove [qualified-name]",
	Aliases: []string{"uninstall"},
	Short:   "Uninstall a connector and delete its record",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	qualifiedName := args[0]

	if err := catalogService.Remove(cmd.Context(), qualifiedName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s is not installed", qualifiedName)
		}
		return fmt.Errorf("remove failed: %w", err)
	}

	cmd.Printf("Removed %s.\n", qualifiedName)
	cmd.Println("Restart the host application to complete removal.")
	return nil
}
