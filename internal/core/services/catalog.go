package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService provides read and maintenance operations over installed
// connectors and the registry.
type CatalogService struct {
	registry  driven.RegistryClient
	records   driven.RecordStore
	installer driven.Installer
	history   driven.HistoryStore
}

// NewCatalogService creates a new catalog service. The history store is
// optional.
func NewCatalogService(
	registry driven.RegistryClient,
	records driven.RecordStore,
	installer driven.Installer,
) *CatalogService {
	return &CatalogService{
		registry:  registry,
		records:   records,
		installer: installer,
	}
}

// SetHistoryStore enables the History operation.
func (s *CatalogService) SetHistoryStore(history driven.HistoryStore) {
	s.history = history
}

// Search queries the registry, preserving registry ranking order.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.ConnectorDescriptor, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.registry.Search(ctx, query)
}

// List returns all installation records.
func (s *CatalogService) List(ctx context.Context) ([]domain.InstallationRecord, error) {
	if s.records == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.records.List(ctx)
}

// Remove uninstalls a connector and deletes its record. The record is
// deleted only after the uninstall succeeds, so a failed uninstall leaves
// the record intact.
func (s *CatalogService) Remove(ctx context.Context, qualifiedName string) error {
	if s.records == nil || s.installer == nil {
		return domain.ErrNotImplemented
	}
	if _, err := s.records.Get(ctx, qualifiedName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get record: %w", err)
	}
	if err := s.installer.Uninstall(ctx, qualifiedName); err != nil {
		return fmt.Errorf("uninstall %s: %w", qualifiedName, err)
	}
	return s.records.Delete(ctx, qualifiedName)
}

// History returns install attempts, most recent first.
func (s *CatalogService) History(ctx context.Context, limit int) ([]domain.InstallAttempt, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.history.List(ctx, limit)
}
