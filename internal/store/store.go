// Package store persists ingested patient variants and their enrichment
// results in DuckDB. Inputs are append-only and keyed by
// (patient_id, variant_number); outputs share the same composite key and
// may be rewritten by later enrichment runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding the inputs and outputs tables.
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
			return nil, fmt.Errorf("create database directory: %w", err)
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
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS inputs (
		patient_id INTEGER,
		variant_number INTEGER,
		chrom VARCHAR,
		pos BIGINT,
		id VARCHAR,
		ref VARCHAR,
		alt VARCHAR,
		PRIMARY KEY (patient_id, variant_number)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS outputs (
		patient_id INTEGER,
		variant_number INTEGER,
		hgvs VARCHAR,
		clinvar_id VARCHAR,
		clinical_significance VARCHAR,
		star_rating VARCHAR,
		review_status VARCHAR,
		conditions_assoc VARCHAR,
		transcript VARCHAR,
		ref_seq_id VARCHAR,
		hgnc_id VARCHAR,
		omim_id VARCHAR,
		g_change VARCHAR,
		c_change VARCHAR,
		p_change VARCHAR,
		PRIMARY KEY (patient_id, variant_number)
	)`)
	return err
}
