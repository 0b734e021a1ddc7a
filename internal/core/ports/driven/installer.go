package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// Installer performs the external install operation: it makes the connector
// available to the host application with the supplied credentials. The host's
// plugin-loading mechanism is outside this interface; installation takes
// effect when the host restarts.
type Installer interface {
	// Install configures the connector in the host application.
	// Returns a *domain.InstallError on failure; its CredentialError flag
	// tells the orchestrator whether to re-collect credentials or offer a
	// plain retry.
	Install(
		ctx context.Context,
		descriptor domain.ConnectorDescriptor,
		submission domain.CredentialSubmission,
		mode domain.DeploymentMode,
	) error

	// Uninstall removes the connector from the host application.
	Uninstall(ctx context.Context, qualifiedName string) error
}
