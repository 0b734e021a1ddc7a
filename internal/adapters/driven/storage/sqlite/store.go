package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mcpm-dev/mcpm-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
)

// Store is SQLite-backed storage for install attempt history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.mcpm/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mcpm", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record appends an install attempt to the history.
func (s *historyStore) Record(ctx context.Context, attempt domain.InstallAttempt) error {
	if attempt.ID == "" {
		return domain.ErrInvalidInput
	}

	variablesJSON, err := json.Marshal(attempt.Variables)
	if err != nil {
		return fmt.Errorf("marshalling variables: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO install_attempts
			(id, qualified_name, phase, reason, no_op, variables, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, attempt.QualifiedName, string(attempt.Phase), string(attempt.Reason),
		attempt.NoOp, string(variablesJSON), attempt.StartedAt.UTC(), attempt.FinishedAt.UTC())

	if err != nil {
		return fmt.Errorf("recording attempt: %w", err)
	}
	return nil
}

// List returns attempts, most recent first, up to limit. Zero means no limit.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.InstallAttempt, error) {
	query := `
		SELECT id, qualified_name, phase, reason, no_op, variables, started_at, finished_at
		FROM install_attempts
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

// ListByConnector returns attempts for one qualified name, most recent first.
func (s *historyStore) ListByConnector(
	ctx context.Context,
	qualifiedName string,
) ([]domain.InstallAttempt, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, qualified_name, phase, reason, no_op, variables, started_at, finished_at
		FROM install_attempts
		WHERE qualified_name = ?
		ORDER BY started_at DESC, id DESC
	`, qualifiedName)
	if err != nil {
		return nil, fmt.Errorf("querying attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

// scanAttempts scans multiple attempt rows.
func scanAttempts(rows *sql.Rows) ([]domain.InstallAttempt, error) {
	var attempts []domain.InstallAttempt //nolint:prealloc // size unknown from query
	for rows.Next() {
		var attempt domain.InstallAttempt
		var phase, reason, variablesJSON string
		var startedAt, finishedAt time.Time
		if err := rows.Scan(&attempt.ID, &attempt.QualifiedName, &phase, &reason,
			&attempt.NoOp, &variablesJSON, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}

		attempt.Phase = domain.Phase(phase)
		attempt.Reason = domain.FailureReason(reason)
		attempt.StartedAt = startedAt
		attempt.FinishedAt = finishedAt

		if err := json.Unmarshal([]byte(variablesJSON), &attempt.Variables); err != nil {
			return nil, fmt.Errorf("unmarshaling variables: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attempts: %w", err)
	}

	return attempts, nil
}
