package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// HistoryStore persists install attempt audit entries. Entries carry
// variable names and outcomes, never credential values.
type HistoryStore interface {
	// Record appends an attempt to the history.
	Record(ctx context.Context, attempt domain.InstallAttempt) error

	// List returns attempts, most recent first, up to limit.
	// A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.InstallAttempt, error)

	// ListByConnector returns attempts for one qualified name, most recent first.
	ListByConnector(ctx context.Context, qualifiedName string) ([]domain.InstallAttempt, error)
}
