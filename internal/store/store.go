// Package store owns the SQLite project database: schema creation, the
// bulk upsert sink, name resolution and the type-partitioned ordinal
// index used by the connection codec.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps an open project database. It is opened once per run,
// mutated serially, and closed at the end; there is no concurrent access
// during an import.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the project database and applies bulk-load
// pragmas.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// Performance tuning for bulk insert
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// DB exposes the underlying handle for read queries.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	return s.db.Close()
}

// ClearTables deletes all rows from the given tables in one transaction.
// A re-import recreates every row from scratch; edges live in tables that
// are cleared alongside their owners.
func (s *Store) ClearTables(tables ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, t := range tables {
		if _, err := tx.Exec("DELETE FROM " + t); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return tx.Commit()
}

// SetFileMeta records the first metadata line of an imported file so the
// exporter can replay it verbatim.
func (s *Store) SetFileMeta(fileName, meta string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO file_meta (file_name, meta_line) VALUES (?, ?)",
		fileName, meta)
	return err
}

// FileMeta returns the stored metadata line for a file, or "" when the
// file was never imported.
func (s *Store) FileMeta(fileName string) (string, error) {
	var meta string
	err := s.db.QueryRow(
		"SELECT meta_line FROM file_meta WHERE file_name = ?", fileName).Scan(&meta)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return meta, nil
}

// Count returns the row count of a table.
func (s *Store) Count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
