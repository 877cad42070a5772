// Package codec maps whitespace-tokenized model input rows onto typed
// records and renders records back as fixed-width text. Column order,
// defaults and null handling derive from per-file field descriptor tables
// rather than per-file parsing code.
package codec

// Kind is the semantic type of a column.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String // free text, wide left-justified pad
	Code   // short enumerated code (obj_typ, hyd_typ)
	Name   // reference to another table's unique name column
)

// Field describes one column of a flat-file table. The same descriptor
// drives decoding, fixed-width encoding and the upsert column list.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
	Default  any

	// RefTable is the table whose name column a Name field references.
	// The stored column is the resolved surrogate key (<Name>_id).
	RefTable string

	Pad  int  // pad width override, 0 means the kind's default
	Left bool // left-justify (names); numeric columns are right-justified
	Exp  bool // always render floats in scientific notation

	// NonZeroMin replaces an exact zero with a small positive epsilon on
	// write. Zero is a placeholder in these columns (areas), not a valid
	// value downstream.
	NonZeroMin bool

	// Lower folds the token to lower case on read. Used for tables whose
	// naming convention is case-insensitive (septic, snow).
	Lower bool

	// NullText overrides the literal written for an absent value.
	NullText string
}

// Record holds one decoded row keyed by field name. Column order always
// comes from the field list, never from map iteration.
type Record map[string]any

// ShortRowPolicy decides what happens to a row with fewer tokens than the
// format requires. The policy is a per-format contract: fixed-column
// formats skip, formats with optional trailing columns pad.
type ShortRowPolicy int

const (
	SkipShort ShortRowPolicy = iota
	PadShort
)

// TableSpec is the decode/encode contract for one file type.
type TableSpec struct {
	Table   string // destination table name
	MinCols int    // minimum token count for a valid row
	Policy  ShortRowPolicy

	// HasID marks formats whose first column is a 1-based row number.
	// It is re-derived on write and not trusted on read beyond ordering.
	HasID bool

	// Fields are the data columns in file order, excluding the leading
	// id column when HasID is set.
	Fields []Field

	// Trailing is an optional description column: present when the row
	// carries more tokens than the fixed fields, taken from the last
	// token, absent otherwise.
	Trailing *Field
}

// Cols returns the expected fixed token count (id column included).
func (s TableSpec) Cols() int {
	n := len(s.Fields)
	if s.HasID {
		n++
	}
	return n
}

// StoreFields returns the fields persisted for this spec: the data
// columns plus the trailing description column when present.
func (s TableSpec) StoreFields() []Field {
	if s.Trailing == nil {
		return s.Fields
	}
	out := make([]Field, 0, len(s.Fields)+1)
	out = append(out, s.Fields...)
	out = append(out, *s.Trailing)
	return out
}

// Column returns the stored column name for a field. Name references are
// stored as resolved surrogate keys under <name>_id.
func (f Field) Column() string {
	if f.Kind == Name && f.RefTable != "" {
		return f.Name + "_id"
	}
	return f.Name
}
