package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basintools/basindb/internal/codec"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.CreateSchema())
	return st
}

func snowFields() []codec.Field {
	return []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "fall_tmp", Kind: codec.Float, Nullable: true},
		{Name: "melt_tmp", Kind: codec.Float, Nullable: true},
	}
}

func TestBulkUpsertIsIdempotent(t *testing.T) {
	st := openTestStore(t)

	rows := []codec.Record{
		{"name": "snow1", "fall_tmp": 1.0, "melt_tmp": 0.5},
		{"name": "snow2", "fall_tmp": 2.0, "melt_tmp": 0.6},
	}
	require.NoError(t, st.BulkUpsert("snow_sno", snowFields(), rows))

	n, err := st.Count("snow_sno")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// same names again: rows replace, never accumulate
	rows[0]["fall_tmp"] = 9.0
	require.NoError(t, st.BulkUpsert("snow_sno", snowFields(), rows))

	n, err = st.Count("snow_sno")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var fallTmp float64
	require.NoError(t, st.DB().QueryRow(
		"SELECT fall_tmp FROM snow_sno WHERE name = 'snow1'").Scan(&fallTmp))
	assert.Equal(t, 9.0, fallTmp)
}

func TestBulkUpsertDefaults(t *testing.T) {
	st := openTestStore(t)

	fields := []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "rec_typ", Kind: codec.Int},
	}
	require.NoError(t, st.BulkUpsert("recall_rec", fields,
		[]codec.Record{{"name": "pt1"}}))

	var recTyp int
	require.NoError(t, st.DB().QueryRow(
		"SELECT rec_typ FROM recall_rec WHERE name = 'pt1'").Scan(&recTyp))
	assert.Equal(t, 0, recTyp)
}

func TestClearTables(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.BulkUpsert("snow_sno", snowFields(),
		[]codec.Record{{"name": "snow1"}}))
	require.NoError(t, st.ClearTables(ProjectTables()...))

	n, err := st.Count("snow_sno")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestResolver(t *testing.T) {
	st := openTestStore(t)
	res := NewResolver(st)

	// miss before the record exists
	_, ok, err := res.Lookup("snow_sno", "snow1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.BulkUpsert("snow_sno", snowFields(),
		[]codec.Record{{"name": "snow1"}}))

	// a prior miss must not stick: the record can arrive later in a pass
	id, ok, err := res.Lookup("snow_sno", "snow1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Greater(t, id, int64(0))

	// cached hit returns the same key
	again, ok, err := res.Lookup("snow_sno", "snow1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, again)

	// empty name is never an error
	_, ok, err = res.Lookup("snow_sno", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileMeta(t *testing.T) {
	st := openTestStore(t)

	meta, err := st.FileMeta("snow.sno")
	require.NoError(t, err)
	assert.Empty(t, meta)

	require.NoError(t, st.SetFileMeta("snow.sno", "snow.sno: original header"))
	meta, err = st.FileMeta("snow.sno")
	require.NoError(t, err)
	assert.Equal(t, "snow.sno: original header", meta)
}
