package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// RegistryClient searches the remote connector registry.
// Ranking is the registry's concern; implementations must preserve the
// order the registry returned.
type RegistryClient interface {
	// Search returns connector descriptors matching the free-text query,
	// in registry ranking order. An empty slice is not an error.
	Search(ctx context.Context, query string) ([]domain.ConnectorDescriptor, error)

	// Get fetches a single descriptor by qualified name.
	// Returns domain.ErrNotFound when the registry has no such connector.
	Get(ctx context.Context, qualifiedName string) (*domain.ConnectorDescriptor, error)
}
