package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// ErrUnknownTypeTag marks a connection type tag with no registered target
// table. This is a configuration error, not a data-quality issue: the
// codec has no way to resolve ordinals for the tag and the whole file
// import must abort.
var ErrUnknownTypeTag = errors.New("unknown connection type tag")

// objTypes maps each connection type tag to the node table its ordinals
// enumerate. Tags for formats drawing on a shared table (recall, export
// coefficients) map to the same table; the on-disk ordinal scheme is
// defined over the unfiltered table either way.
var objTypes = map[string]string{
	"hru": "hru_con",
	"hlt": "hru_lte_con",
	"ru":  "rout_unit_con",
	"aqu": "aquifer_con",
	"cha": "channel_con",
	"sdc": "chandeg_con",
	"res": "reservoir_con",
	"rec": "recall_con",
	"exc": "recall_con",
	"dr":  "delratio_con",
	"out": "outlet_con",
}

// TagTable returns the node table enumerated by a type tag.
func TagTable(tag string) (string, error) {
	t, ok := objTypes[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTypeTag, tag)
	}
	return t, nil
}

// OrdinalIndex caches, per type tag, the ascending-surrogate-key
// enumeration of one table's rows as a roaring bitmap. Rank gives the
// 1-based ordinal of a key, Select gives the key at an ordinal, both
// O(1)-ish after the single O(n) build.
//
// An index is scoped to one file read or write call: it must not outlive
// inserts into the tables it enumerates.
type OrdinalIndex struct {
	store *Store
	sets  map[string]*roaring.Bitmap
}

func NewOrdinalIndex(s *Store) *OrdinalIndex {
	return &OrdinalIndex{store: s, sets: make(map[string]*roaring.Bitmap)}
}

// KeyAt returns the surrogate key at a 1-based ordinal within the tag's
// object set. An out-of-range ordinal (or an empty set) is a per-edge
// unresolved reference: ok=false, no error.
func (x *OrdinalIndex) KeyAt(tag string, ordinal int) (int64, bool, error) {
	table, err := TagTable(tag)
	if err != nil {
		return 0, false, err
	}
	bm, err := x.forTable(table, "")
	if err != nil {
		return 0, false, err
	}
	if ordinal < 1 || uint64(ordinal) > bm.GetCardinality() {
		return 0, false, nil
	}
	key, err := bm.Select(uint32(ordinal - 1))
	if err != nil {
		return 0, false, nil
	}
	return int64(key), true, nil
}

// OrdinalOf returns the 1-based position of a surrogate key within the
// tag's object set.
func (x *OrdinalIndex) OrdinalOf(tag string, key int64) (int, bool, error) {
	table, err := TagTable(tag)
	if err != nil {
		return 0, false, err
	}
	return x.TableOrdinalOf(table, "", key)
}

// TableOrdinalOf is OrdinalOf against an explicit table with an optional
// filter predicate. Connection files use it for the element reference
// column, whose ordinal runs over the (possibly filtered) element table
// rather than a registered tag.
func (x *OrdinalIndex) TableOrdinalOf(table, where string, key int64) (int, bool, error) {
	bm, err := x.forTable(table, where)
	if err != nil {
		return 0, false, err
	}
	// keys beyond the bitmap's 32-bit domain cannot be in the set
	if key < 1 || key > math.MaxUint32 {
		return 0, false, nil
	}
	if !bm.Contains(uint32(key)) {
		return 0, false, nil
	}
	return int(bm.Rank(uint32(key))), true, nil
}

// TableKeyAt is KeyAt against an explicit table with an optional filter.
func (x *OrdinalIndex) TableKeyAt(table, where string, ordinal int) (int64, bool, error) {
	bm, err := x.forTable(table, where)
	if err != nil {
		return 0, false, err
	}
	if ordinal < 1 || uint64(ordinal) > bm.GetCardinality() {
		return 0, false, nil
	}
	key, err := bm.Select(uint32(ordinal - 1))
	if err != nil {
		return 0, false, nil
	}
	return int64(key), true, nil
}

func (x *OrdinalIndex) forTable(table, where string) (*roaring.Bitmap, error) {
	cacheKey := table + "|" + where
	if bm, ok := x.sets[cacheKey]; ok {
		return bm, nil
	}

	q := "SELECT id FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY id"

	rows, err := x.store.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("build ordinal index for %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	bm := roaring.New()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		// 32-bit bitmaps: surrogate keys are sequential SQLite rowids,
		// but reject anything that would silently wrap.
		if id < 1 || id > math.MaxUint32 {
			return nil, fmt.Errorf("ordinal index for %s: key %d outside 32-bit range", table, id)
		}
		bm.Add(uint32(id))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	x.sets[cacheKey] = bm
	return bm, nil
}
