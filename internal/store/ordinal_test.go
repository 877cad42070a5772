package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basintools/basindb/internal/codec"
)

func conFields() []codec.Field {
	return []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "area", Kind: codec.Float},
	}
}

func TestOrdinalIndexRoundTrip(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.BulkUpsert("channel_con", conFields(), []codec.Record{
		{"name": "cha1", "area": 1.0},
		{"name": "cha2", "area": 2.0},
		{"name": "cha3", "area": 3.0},
	}))

	idx := NewOrdinalIndex(st)

	for ord := 1; ord <= 3; ord++ {
		key, ok, err := idx.KeyAt("cha", ord)
		require.NoError(t, err)
		require.True(t, ok)

		back, ok, err := idx.OrdinalOf("cha", key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ord, back)
	}
}

func TestOrdinalIndexOutOfRange(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.BulkUpsert("channel_con", conFields(),
		[]codec.Record{{"name": "cha1", "area": 1.0}}))

	idx := NewOrdinalIndex(st)

	// out of range is recoverable, not an error
	_, ok, err := idx.KeyAt("cha", 99)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = idx.KeyAt("cha", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// an empty object set resolves nothing
	_, ok, err = idx.KeyAt("res", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrdinalIndexKeyRange(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.BulkUpsert("channel_con", conFields(),
		[]codec.Record{{"name": "cha1", "area": 1.0}}))

	idx := NewOrdinalIndex(st)

	// keys outside the 32-bit domain cannot be members, and must not
	// wrap around onto a real key
	_, ok, err := idx.OrdinalOf("cha", math.MaxUint32+1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = idx.OrdinalOf("cha", -1)
	require.NoError(t, err)
	assert.False(t, ok)

	// a stored key beyond the domain fails the index build outright
	_, err = st.DB().Exec(
		"INSERT INTO channel_con (id, name, area) VALUES (?, 'cha_big', 1.0)",
		int64(math.MaxUint32)+2)
	require.NoError(t, err)

	_, _, err = NewOrdinalIndex(st).KeyAt("cha", 1)
	require.ErrorContains(t, err, "32-bit range")
}

func TestOrdinalIndexUnknownTag(t *testing.T) {
	st := openTestStore(t)
	idx := NewOrdinalIndex(st)

	_, _, err := idx.KeyAt("bogus", 1)
	require.ErrorIs(t, err, ErrUnknownTypeTag)

	_, _, err = idx.OrdinalOf("bogus", 1)
	require.ErrorIs(t, err, ErrUnknownTypeTag)
}

func TestOrdinalIndexFiltered(t *testing.T) {
	st := openTestStore(t)

	fields := []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "rec_typ", Kind: codec.Int},
	}
	require.NoError(t, st.BulkUpsert("recall_rec", fields, []codec.Record{
		{"name": "rec1", "rec_typ": int64(1)},
		{"name": "exc1", "rec_typ": int64(4)},
		{"name": "rec2", "rec_typ": int64(2)},
	}))

	idx := NewOrdinalIndex(st)

	// the filtered enumeration skips the export coefficient row
	key, ok, err := idx.TableKeyAt("recall_rec", "rec_typ != 4", 2)
	require.NoError(t, err)
	require.True(t, ok)

	var name string
	require.NoError(t, st.DB().QueryRow(
		"SELECT name FROM recall_rec WHERE id = ?", key).Scan(&name))
	assert.Equal(t, "rec2", name)

	// the unfiltered enumeration sees all three
	key, ok, err = idx.TableKeyAt("recall_rec", "", 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, st.DB().QueryRow(
		"SELECT name FROM recall_rec WHERE id = ?", key).Scan(&name))
	assert.Equal(t, "exc1", name)
}

func TestTagTable(t *testing.T) {
	table, err := TagTable("sdc")
	require.NoError(t, err)
	assert.Equal(t, "chandeg_con", table)

	// recall and export coefficient tags share one node table
	recTable, err := TagTable("rec")
	require.NoError(t, err)
	excTable, err := TagTable("exc")
	require.NoError(t, err)
	assert.Equal(t, recTable, excTable)
}
