package storage

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/potato/internal/migration"
)

func schemaVersion(db *sql.DB, runner func() (*migration.Runner, error)) (int, int, error) {
	if db == nil {
		return 0, 0, fmt.Errorf("storage not loaded")
	}
	r, err := runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

// SchemaVersion reports the applied and the newest embedded migration.
func (s *SQLiteStore) SchemaVersion() (int, int, error) {
	return schemaVersion(s.db, s.runner)
}

// SchemaVersion reports the applied and the newest embedded migration.
func (s *PostgresStore) SchemaVersion() (int, int, error) {
	return schemaVersion(s.db, s.runner)
}
