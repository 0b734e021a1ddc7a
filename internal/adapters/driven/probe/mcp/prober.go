// Package mcp implements driven.ToolProber by opening a short-lived MCP
// session against the connector and listing its tools.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// Version identifies this client to probed connectors.
const Version = "0.1.0"

// DefaultTimeout bounds a whole probe, connect included.
const DefaultTimeout = 15 * time.Second

// Ensure Prober implements the interface.
var _ driven.ToolProber = (*Prober)(nil)

// Prober lists a connector's tools over a temporary MCP session.
type Prober struct {
	timeout time.Duration
}

// NewProber creates a prober with the default timeout.
func NewProber() *Prober {
	return &Prober{timeout: DefaultTimeout}
}

// ListTools connects to the connector described by spec, lists its tools
// and disconnects. Local connectors are launched as a subprocess with the
// submission's variables in the environment; remote connectors are reached
// at their endpoint.
func (p *Prober) ListTools(
	ctx context.Context,
	spec domain.ConnectionSpec,
	submission domain.CredentialSubmission,
) ([]string, error) {
	transport, err := p.transportFor(spec, submission)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return listTools(ctx, transport)
}

// listTools runs a full client session against the transport.
func listTools(ctx context.Context, transport mcp.Transport) ([]string, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "mcpm",
		Version: Version,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to connector: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Debug("closing probe session: %v", err)
		}
	}()

	var names []string
	cursor := ""
	for {
		result, err := session.ListTools(ctx, &mcp.ListToolsParams{Cursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("listing tools: %w", err)
		}
		for _, tool := range result.Tools {
			names = append(names, tool.Name)
		}
		if result.NextCursor == "" {
			return names, nil
		}
		cursor = result.NextCursor
	}
}

func (p *Prober) transportFor(
	spec domain.ConnectionSpec,
	submission domain.CredentialSubmission,
) (mcp.Transport, error) {
	switch spec.Transport {
	case domain.TransportStdio:
		if spec.Command == "" {
			return nil, fmt.Errorf("stdio connection has no command")
		}
		cmd := exec.Command(spec.Command, spec.Args...)
		cmd.Env = probeEnv(os.Environ(), submission)
		return &mcp.CommandTransport{Command: cmd}, nil
	case domain.TransportStreamableHTTP:
		return &mcp.StreamableClientTransport{Endpoint: spec.Endpoint}, nil
	case domain.TransportSSE:
		return &mcp.SSEClientTransport{Endpoint: spec.Endpoint}, nil
	default:
		return nil, fmt.Errorf("unsupported transport %q", spec.Transport)
	}
}

// probeEnv appends the submission's variables to the base environment.
// Sorted for a stable subprocess environment.
func probeEnv(base []string, submission domain.CredentialSubmission) []string {
	names := submission.VariableNames()
	sort.Strings(names)

	env := make([]string, 0, len(base)+len(names))
	env = append(env, base...)
	for _, name := range names {
		env = append(env, name+"="+submission[name])
	}
	return env
}
