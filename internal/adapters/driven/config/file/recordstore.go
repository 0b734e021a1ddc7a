package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// recordEntry is the TOML shape of one installation record.
type recordEntry struct {
	ID          string    `toml:"id"`
	Mode        string    `toml:"mode"`
	Variables   []string  `toml:"variables"`
	InstalledAt time.Time `toml:"installed_at"`
}

// recordFile is the TOML shape of the whole connectors file, keyed by
// qualified name.
type recordFile struct {
	Connectors map[string]recordEntry `toml:"connectors"`
}

// RecordStore is a file-based implementation of driven.RecordStore using
// TOML. The whole file is rewritten on every change via a temp-file rename,
// so a record is never partially written.
type RecordStore struct {
	mu       sync.RWMutex
	filePath string
	records  map[string]domain.InstallationRecord
}

// NewRecordStore creates a new TOML-based record store.
// If configDir is empty, defaults to ~/.mcpm/connectors.toml.
func NewRecordStore(configDir string) (*RecordStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".mcpm")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &RecordStore{
		filePath: filepath.Join(configDir, "connectors.toml"),
		records:  make(map[string]domain.InstallationRecord),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
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

// Save stores or replaces the record for its qualified name and persists
// immediately.
func (s *RecordStore) Save(_ context.Context, record domain.InstallationRecord) error {
	if record.QualifiedName == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.records[record.QualifiedName]
	s.records[record.QualifiedName] = record
	if err := s.save(); err != nil {
		// Keep the in-memory view consistent with the file.
		if existed {
			s.records[record.QualifiedName] = previous
		} else {
			delete(s.records, record.QualifiedName)
		}
		return err
	}
	return nil
}

// Delete removes the record for a qualified name.
func (s *RecordStore) Delete(_ context.Context, qualifiedName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[qualifiedName]; !ok {
		return nil
	}
	previous := s.records[qualifiedName]
	delete(s.records, qualifiedName)
	if err := s.save(); err != nil {
		s.records[qualifiedName] = previous
		return err
	}
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

// save writes the records to the TOML file (caller must hold lock).
// The write goes to a temp file in the same directory, then renames over
// the target, so readers never observe a partial file.
func (s *RecordStore) save() error {
	out := recordFile{Connectors: make(map[string]recordEntry, len(s.records))}
	for name, record := range s.records {
		out.Connectors[name] = recordEntry{
			ID:          record.ID,
			Mode:        string(record.Mode),
			Variables:   record.Variables,
			InstalledAt: record.InstalledAt,
		}
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".connectors-*.toml")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

// Load reads records from the TOML file.
func (s *RecordStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No connectors file yet - that's fine, start empty
			s.records = make(map[string]domain.InstallationRecord)
			return nil
		}
		return err
	}

	var loaded recordFile
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	records := make(map[string]domain.InstallationRecord, len(loaded.Connectors))
	for name, entry := range loaded.Connectors {
		records[name] = domain.InstallationRecord{
			ID:            entry.ID,
			QualifiedName: name,
			Mode:          domain.DeploymentMode(entry.Mode),
			Variables:     entry.Variables,
			InstalledAt:   entry.InstalledAt,
		}
	}
	s.records = records
	return nil
}

// Path returns the connectors file path.
func (s *RecordStore) Path() string {
	return s.filePath
}

// Watch reloads the store when the connectors file changes on disk and
// invokes onChange after each successful reload. Blocks until the context
// is cancelled. Editors and atomic renames produce Create events, so both
// Write and Create trigger a reload.
func (s *RecordStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the rename-over pattern replaces the file node.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("Reloading %s: %v", s.filePath, err)
				continue
			}
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
