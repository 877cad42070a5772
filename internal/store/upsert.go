package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/basintools/basindb/internal/codec"
)

// BulkUpsert inserts a batch of records into a table in one transaction.
// Rows that would violate a uniqueness constraint replace the existing
// row instead of failing the batch, so a re-import never accumulates
// duplicates. Column names and per-field defaults derive from the field
// descriptors, not from the records themselves.
func (s *Store) BulkUpsert(table string, fields []codec.Field, rows []codec.Record) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := upsertTx(tx, table, fields, rows); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// UpsertPath applies a batch against a database referenced by path,
// opening and committing its own connection.
func UpsertPath(path, table string, fields []codec.Field, rows []codec.Record) error {
	st, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return st.BulkUpsert(table, fields, rows)
}

func upsertTx(tx *sql.Tx, table string, fields []codec.Field, rows []codec.Record) error {
	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Column()
		marks[i] = "?"
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare upsert %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(fields))
	for _, rec := range rows {
		for i, f := range fields {
			v, ok := rec[f.Name]
			if !ok || v == nil {
				v = fieldDefault(f)
			}
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}
	return nil
}

// fieldDefault is the stored value for an absent optional field: zero for
// numeric kinds, false for booleans, NULL for text and unresolved
// references.
func fieldDefault(f codec.Field) any {
	if f.Default != nil {
		return f.Default
	}
	if f.Nullable {
		return nil
	}
	switch f.Kind {
	case codec.Int:
		return int64(0)
	case codec.Float:
		return float64(0)
	case codec.Bool:
		return false
	default:
		return nil
	}
}
