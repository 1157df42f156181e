// Package duckdb provides a DuckDB-backed cache of CIGAR query results.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for caching query results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS query_results (
		cigar VARCHAR,
		start_pos BIGINT,
		insertion_consumes_ref BOOLEAN,
		deletion_covered BOOLEAN,
		end_pos BIGINT,
		ref_length BIGINT,
		query_length BIGINT,
		junctions VARCHAR,
		runs VARCHAR,
		PRIMARY KEY (cigar, start_pos, insertion_consumes_ref, deletion_covered)
	)`)
	return err
}

// Path returns the database path, empty for an in-memory store.
func (s *Store) Path() string {
	return s.path
}
