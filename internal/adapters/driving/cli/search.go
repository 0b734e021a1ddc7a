package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the connector registry",
	Long: `Queries the connector registry and prints matches in registry
ranking order, without installing anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	query := strings.Join(args, " ")

	results, err := catalogService.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ConnectorDescriptor) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ConnectorDescriptor) error {
	if len(results) == 0 {
		cmd.Println("No connectors found.")
		return nil
	}

	cmd.Println("Connectors:")
	cmd.Println()
	for i, result := range results {
		verified := ""
		if result.Verified {
			verified = " [verified]"
		}
		cmd.Printf("  [%d] %s%s (%s)\n", i+1, result.QualifiedName, verified, result.Mode())
		if result.Description != "" {
			cmd.Printf("      %s\n", result.Description)
		}
		cmd.Println()
	}

	return nil
}
