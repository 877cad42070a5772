package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basintools/basindb/internal/codec"
	"github.com/basintools/basindb/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.CreateSchema())
	return st
}

func seedGraph(t *testing.T, st *store.Store) {
	t.Helper()
	conFields := []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "area", Kind: codec.Float},
	}
	require.NoError(t, st.BulkUpsert("channel_con", conFields, []codec.Record{
		{"name": "chan1", "area": 1.0},
		{"name": "chan2", "area": 2.0},
	}))
	outFields := []codec.Field{
		{Name: "channel_con_id", Kind: codec.Int},
		{Name: "ord", Kind: codec.Int},
		{Name: "obj_typ", Kind: codec.Code},
		{Name: "obj_id", Kind: codec.Int, Nullable: true},
		{Name: "hyd_typ", Kind: codec.Code},
		{Name: "frac", Kind: codec.Float},
	}
	require.NoError(t, st.BulkUpsert("channel_con_out", outFields, []codec.Record{
		{"channel_con_id": int64(1), "ord": int64(1), "obj_typ": "cha",
			"obj_id": int64(2), "hyd_typ": "tot", "frac": 1.0},
	}))
}

func TestVerifyHealthy(t *testing.T) {
	st := openTestStore(t)
	seedGraph(t, st)

	rep, err := Verify(st)
	require.NoError(t, err)
	assert.True(t, rep.Healthy)

	var cha *ConnectionHealth
	for i := range rep.Connections {
		if rep.Connections[i].File == "channel.con" {
			cha = &rep.Connections[i]
		}
	}
	require.NotNil(t, cha)
	assert.Equal(t, 2, cha.Nodes)
	assert.Equal(t, 1, cha.Edges)
	assert.Equal(t, 0, cha.Unresolved)
	assert.Equal(t, 0, cha.OrderGaps)
}

func TestVerifyFlagsUnresolvedAndGaps(t *testing.T) {
	st := openTestStore(t)
	seedGraph(t, st)

	// an unresolved edge and an owner whose order starts at 2
	_, err := st.DB().Exec(`INSERT INTO channel_con_out
		(channel_con_id, ord, obj_typ, obj_id, hyd_typ, frac)
		VALUES (2, 2, 'cha', NULL, 'tot', 0.5)`)
	require.NoError(t, err)

	rep, err := Verify(st)
	require.NoError(t, err)
	assert.False(t, rep.Healthy)

	for _, c := range rep.Connections {
		if c.File == "channel.con" {
			assert.Equal(t, 1, c.Unresolved)
			assert.Equal(t, 1, c.OrderGaps)
		}
	}

	var b strings.Builder
	require.NoError(t, rep.WriteJSON(&b))
	assert.Contains(t, b.String(), `"healthy": false`)
	assert.Contains(t, b.String(), "channel.con")
}
