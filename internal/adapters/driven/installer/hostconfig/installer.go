// Package hostconfig implements driven.Installer by writing connector
// entries into the host application's MCP server configuration file.
//
// The file maps qualified connector names to launch/connect details,
// including credential values in the environment block. It is written
// with owner-only permissions via a temp-file rename, so an entry is
// installed completely or not at all. The host picks the entry up on
// its next restart; restarting the host is outside this adapter.
package hostconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// Ensure Installer implements the interface.
var _ driven.Installer = (*Installer)(nil)

// serverEntry is one connector in the host config file.
type serverEntry struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	URL     string            `json:"url,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// hostConfig is the file shape: qualified name to server entry.
type hostConfig struct {
	Servers map[string]serverEntry `json:"mcpServers"`
}

// Installer writes connector entries into a host config file.
type Installer struct {
	mu       sync.Mutex
	filePath string
}

// NewInstaller creates an installer targeting the given host config file.
// If filePath is empty, defaults to ~/.mcpm/hosts/default.json.
func NewInstaller(filePath string) (*Installer, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		filePath = filepath.Join(home, ".mcpm", "hosts", "default.json")
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return nil, err
	}
	return &Installer{filePath: filePath}, nil
}

// Install merges the connector into the host config. Failures come back as
// *domain.InstallError so the workflow can offer a retry.
func (i *Installer) Install(
	_ context.Context,
	descriptor domain.ConnectorDescriptor,
	submission domain.CredentialSubmission,
	mode domain.DeploymentMode,
) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	config, err := i.load()
	if err != nil {
		return &domain.InstallError{Message: fmt.Sprintf("reading host config: %v", err)}
	}

	spec := descriptor.PreferredConnection()
	entry := serverEntry{}
	if mode == domain.ModeLocal {
		entry.Command = spec.Command
		entry.Args = spec.Args
	} else {
		entry.URL = spec.Endpoint
	}
	if len(submission) > 0 {
		entry.Env = make(map[string]string, len(submission))
		for name, value := range submission {
			entry.Env[name] = value
		}
	}

	config.Servers[descriptor.QualifiedName] = entry
	if err := i.write(config); err != nil {
		return &domain.InstallError{Message: fmt.Sprintf("writing host config: %v", err)}
	}

	logger.Info("Wrote %s entry to %s", descriptor.QualifiedName, i.filePath)
	return nil
}

// Uninstall removes the connector's entry. Removing a missing entry is
// not an error.
func (i *Installer) Uninstall(_ context.Context, qualifiedName string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	config, err := i.load()
	if err != nil {
		return fmt.Errorf("reading host config: %w", err)
	}
	if _, ok := config.Servers[qualifiedName]; !ok {
		return nil
	}
	delete(config.Servers, qualifiedName)
	return i.write(config)
}

// Path returns the host config file path.
func (i *Installer) Path() string {
	return i.filePath
}

func (i *Installer) load() (*hostConfig, error) {
	config := &hostConfig{Servers: make(map[string]serverEntry)}

	data, err := os.ReadFile(i.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", i.filePath, err)
	}
	if config.Servers == nil {
		config.Servers = make(map[string]serverEntry)
	}
	return config, nil
}

func (i *Installer) write(config *hostConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(i.filePath), ".host-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, i.filePath)
}
