// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and when persistence is not configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.InstallationRecord
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.InstallationRecord),
	}
}

// Get retrieves the record for a qualified name.
func (s *RecordStore) Get(_ context.Context, qualifiedName string) (*domain.InstallationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[qualifiedName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Save stores or replaces the record for its qualified name.
func (s *RecordStore) Save(_ context.Context, record domain.InstallationRecord) error {
	if record.QualifiedName == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.QualifiedName] = record
	return nil
}

// Delete removes the record for a qualified name.
func (s *RecordStore) Delete(_ context.Context, qualifiedName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, qualifiedName)
	return nil
}

// List returns all records, sorted by qualified name.
func (s *RecordStore) List(_ context.Context) ([]domain.InstallationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.InstallationRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].QualifiedName < result[j].QualifiedName
	})
	return result, nil
}
