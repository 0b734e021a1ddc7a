package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// ToolProber connects to a connector and lists the tools it exposes.
// Used after a successful install to tell the operator what the connector
// will provide once the host restarts. Optional; the workflow reports an
// empty tool list when probing is unavailable or fails.
type ToolProber interface {
	// ListTools returns the tool names the connector exposes, in the order
	// the connector reports them.
	ListTools(
		ctx context.Context,
		spec domain.ConnectionSpec,
		submission domain.CredentialSubmission,
	) ([]string, error)
}
