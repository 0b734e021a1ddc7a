package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// RecordStore persists installation records, keyed by qualified connector
// name. One record per name; Save replaces any existing record atomically
// (all-or-nothing, never a partial write).
type RecordStore interface {
	// Get retrieves the record for a qualified name.
	// Returns domain.ErrNotFound when no record exists.
	Get(ctx context.Context, qualifiedName string) (*domain.InstallationRecord, error)

	// Save stores or replaces the record for its qualified name.
	Save(ctx context.Context, record domain.InstallationRecord) error

	// Delete removes the record for a qualified name.
	// Deleting a missing record is not an error.
	Delete(ctx context.Context, qualifiedName string) error

	// List returns all records, sorted by qualified name.
	List(ctx context.Context) ([]domain.InstallationRecord, error)
}
