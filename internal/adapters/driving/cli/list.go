package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RecordWatcher reruns a callback whenever the installation records change
// on disk. Blocks until the context is cancelled.
type RecordWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// recordWatcher enables `list --watch`; optional.
var recordWatcher RecordWatcher

var listWatch bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed connectors",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "rerun when the records change on disk")
	rootCmd.AddCommand(listCmd)
}

// SetRecordWatcher injects the watcher backing list --watch.
func SetRecordWatcher(w RecordWatcher) {
	recordWatcher = w
}

func runList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	if err := printRecords(cmd); err != nil {
		return err
	}

	if !listWatch {
		return nil
	}
	if recordWatcher == nil {
		return errors.New("record watcher not configured")
	}

	cmd.Println("Watching for changes (ctrl+c to stop)...")
	return recordWatcher.Watch(cmd.Context(), func() {
		cmd.Println()
		if err := printRecords(cmd); err != nil {
			cmd.PrintErrf("listing records: %v\n", err)
		}
	})
}

func printRecords(cmd *cobra.Command) error {
	records, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No connectors installed.")
		return nil
	}

	cmd.Println("Installed connectors:")
	cmd.Println()
	for _, record := range records {
		cmd.Printf("  %s (%s), installed %s\n",
			record.QualifiedName, record.Mode, record.InstalledAt.Format("2006-01-02"))
		if len(record.Variables) > 0 {
			cmd.Printf("    variables: %s\n", strings.Join(record.Variables, ", "))
		}
	}

	return nil
}
