package memory

import (
	"context"
	"sync"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Attempts are kept in insertion order.
type HistoryStore struct {
	mu       sync.RWMutex
	attempts []domain.InstallAttempt
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record appends an attempt to the history.
func (s *HistoryStore) Record(_ context.Context, attempt domain.InstallAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

// List returns attempts, most recent first, up to limit.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.InstallAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.InstallAttempt, 0, len(s.attempts))
	for i := len(s.attempts) - 1; i >= 0; i-- {
		result = append(result, s.attempts[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// ListByConnector returns attempts for one qualified name, most recent first.
func (s *HistoryStore) ListByConnector(_ context.Context, qualifiedName string) ([]domain.InstallAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.InstallAttempt
	for i := len(s.attempts) - 1; i >= 0; i-- {
		if s.attempts[i].QualifiedName == qualifiedName {
			result = append(result, s.attempts[i])
		}
	}
	return result, nil
}
