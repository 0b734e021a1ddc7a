// Package cli provides the mcpm command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driving"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// version is the CLI version, overridden at build time.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	installWorkflow driving.InstallWorkflow
	catalogService  driving.CatalogService
)

// setup builds the services once flags are parsed; injected by main so the
// --config-dir flag can take effect before any command runs.
var setup func(configDir string) error

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "mcpm",
	Short: "Connector package manager for MCP hosts",
	Long: `mcpm installs MCP connector packages into a host application.

It searches the connector registry, detects which credentials a connector
needs, collects and validates them, and writes the host configuration.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if setup != nil {
			return setup(configDir)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.mcpm)")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSetup registers the service construction hook, run after flag parsing
// and before any command.
func SetSetup(fn func(configDir string) error) {
	setup = fn
}

// SetInstallWorkflow injects the install workflow service.
func SetInstallWorkflow(w driving.InstallWorkflow) {
	installWorkflow = w
}

// SetCatalogService injects the catalog service.
func SetCatalogService(s driving.CatalogService) {
	catalogService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
