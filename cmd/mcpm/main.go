// Command mcpm is the MCP connector package manager.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/config/file"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/installer/hostconfig"
	probemcp "github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/probe/mcp"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/registry/mcpregistry"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/storage/sqlite"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driving/cli"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driving/prompt"
	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driving/tui"
	"github.com/mcpm-dev/mcpm-cli/internal/core/services"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var history *sqlite.Store
	defer func() {
		if history != nil {
			history.Close()
		}
	}()

	cli.SetVersion(version)
	cli.SetSetup(func(configDir string) error {
		var err error
		history, err = wire(configDir)
		return err
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// wire builds adapters and services and injects them into the CLI. Returns
// the history store so main can close it after commands finish.
func wire(configDir string) (*sqlite.Store, error) {
	if configDir == "" {
		configDir = os.Getenv("MCPM_CONFIG_DIR")
	}

	// Driven adapters.
	records, err := file.NewRecordStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	installer, err := hostconfig.NewInstaller(os.Getenv("MCPM_HOST_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("opening host config: %w", err)
	}

	var registryOpts []mcpregistry.Option
	if baseURL := os.Getenv("MCPM_REGISTRY_URL"); baseURL != "" {
		registryOpts = append(registryOpts, mcpregistry.WithBaseURL(baseURL))
	}
	if token := os.Getenv("MCPM_REGISTRY_TOKEN"); token != "" {
		registryOpts = append(registryOpts, mcpregistry.WithToken(token))
	}
	registry := mcpregistry.NewClient(registryOpts...)

	// Full-screen picker only when attached to a terminal.
	var promptOpts []prompt.Option
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		promptOpts = append(promptOpts, prompt.WithPicker(tui.PickCandidate))
	}
	prompter := prompt.NewTerminal(promptOpts...)

	// Core services.
	patterns := services.NewPatternRegistry()
	detector := services.NewCapabilityDetector(patterns)
	validator := services.NewCredentialValidator()

	orchestrator := services.NewInstallOrchestrator(
		registry, records, installer, prompter, detector, validator, uuid.NewString,
	)
	orchestrator.SetToolProber(probemcp.NewProber())

	catalog := services.NewCatalogService(registry, records, installer)

	// History is best-effort; a broken database disables it rather than
	// blocking installs.
	history, err := sqlite.NewStore(os.Getenv("MCPM_DATA_DIR"))
	if err != nil {
		logger.Warn("install history disabled: %v", err)
		history = nil
	} else {
		orchestrator.SetHistoryStore(history.HistoryStore())
		catalog.SetHistoryStore(history.HistoryStore())
	}

	// Driving side.
	cli.SetInstallWorkflow(orchestrator)
	cli.SetCatalogService(catalog)
	cli.SetRecordWatcher(records)

	return history, nil
}
