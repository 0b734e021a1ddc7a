package driving

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// CatalogService exposes read and maintenance operations over installed
// connectors and the registry, outside the install workflow itself.
type CatalogService interface {
	// Search queries the registry and returns descriptors in registry order.
	Search(ctx context.Context, query string) ([]domain.ConnectorDescriptor, error)

	// List returns all installation records, sorted by qualified name.
	List(ctx context.Context) ([]domain.InstallationRecord, error)

	// Remove uninstalls a connector and deletes its record.
	// Returns domain.ErrNotFound when no record exists.
	Remove(ctx context.Context, qualifiedName string) error

	// History returns install attempts, most recent first, up to limit.
	History(ctx context.Context, limit int) ([]domain.InstallAttempt, error)
}
