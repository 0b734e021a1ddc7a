package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show install attempt history",
	Long: `Lists past install attempts, most recent first. Entries record the
connector, outcome and variable names involved, never credential values.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of attempts")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	attempts, err := catalogService.History(cmd.Context(), historyLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errors.New("history is not enabled")
		}
		return fmt.Errorf("loading history: %w", err)
	}

	if len(attempts) == 0 {
		cmd.Println("No install attempts recorded.")
		return nil
	}

	cmd.Println("Install attempts:")
	cmd.Println()
	for _, attempt := range attempts {
		cmd.Printf("  %s  %s  %s\n",
			attempt.FinishedAt.Format("2006-01-02 15:04"),
			attempt.QualifiedName,
			describeOutcome(attempt))
		if len(attempt.Variables) > 0 {
			cmd.Printf("    variables: %s\n", strings.Join(attempt.Variables, ", "))
		}
	}

	return nil
}

func describeOutcome(attempt domain.InstallAttempt) string {
	if attempt.Phase == domain.PhaseConfirmed {
		if attempt.NoOp {
			return "confirmed (no-op)"
		}
		return "confirmed"
	}
	return fmt.Sprintf("failed (%s)", attempt.Reason)
}
