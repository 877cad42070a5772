package store

import (
	"database/sql"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver translates a textual name reference into the surrogate key of
// a previously imported record. A miss is a normal, recoverable condition
// (optional relationships), reported as ok=false rather than an error.
//
// Hits are cached for the duration of one import pass; misses are not,
// since the record may be inserted later in the same pass.
type Resolver struct {
	store *Store
	cache *lru.Cache[string, int64]
}

func NewResolver(s *Store) *Resolver {
	cache, _ := lru.New[string, int64](8192)
	return &Resolver{store: s, cache: cache}
}

// Lookup resolves name within table by exact match on the unique name
// column.
func (r *Resolver) Lookup(table, name string) (int64, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	key := table + "\x00" + name
	if id, ok := r.cache.Get(key); ok {
		return id, true, nil
	}

	var id int64
	err := r.store.db.QueryRow(
		"SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve %s in %s: %w", name, table, err)
	}

	r.cache.Add(key, id)
	return id, true, nil
}
