package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/basintools/basindb/internal/config"
	"github.com/basintools/basindb/internal/fileio"
	"github.com/basintools/basindb/internal/store"
)

func newProject(t *testing.T) *fileio.Context {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "project.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := &fileio.Context{
		Store:   st,
		Res:     store.NewResolver(st),
		FS:      memfs.New(),
		Log:     zap.NewNop().Sugar(),
		Version: "1.0.0",
	}

	write := func(name string, lines ...string) {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, util.WriteFile(ctx.FS, name, []byte(content), 0o644))
	}

	write("time.sim",
		"time.sim: test project",
		"day_start yrc_start day_end yrc_end step",
		"0 1990 0 1995 0",
	)
	write("weather-sta.cli",
		"weather-sta.cli: test project",
		"name wgn pcp tmp slr hmd wnd lat lon",
		"wst1 wgn1 pcp1.pcp tmp1.tmp sim sim sim 35.0 -80.0",
	)
	write("snow.sno",
		"snow.sno: test project",
		"name fall_tmp melt_tmp melt_max melt_min tmp_lag snow_h2o cov50 snow_init",
		"snow1 1.0 0.5 4.5 0.5 1.0 1.0 0.5", // short row, pads
	)
	write("septic.sep",
		"septic.sep: test project",
		"name q_rate bod tss nh4_n no3_n no2_n org_n min_p org_p fcoli",
		"sep1 1.0 2.0 3.0 4.0 5.0 6.0 7.0 8.0 9.0 10.0",
		"broken 1.0 2.0", // short row, drops
	)
	write("initial.cha",
		"initial.cha: test project",
		"name org_min pest path hmet salt",
		"initcha1 1.0 0.0 0.0 0.0 0.0",
	)
	write("channel.cha",
		"channel.cha: test project",
		"id name init hyd sed nut",
		"1 main_channel initcha1 null null null",
		"2 trib_channel initcha1 null null null",
	)
	write("channel.con",
		"channel.con: test project",
		"id name gis_id area lat lon elev cha wst cst ovfl rule out_tot",
		"1 chan1 1 10.0 35.0 -80.0 100.0 1 wst1 0 0 0 1 cha 2 tot 1.00000",
		"2 chan2 2 20.0 35.1 -80.1 95.0 2 wst1 0 0 0 0",
	)
	return ctx
}

func runImport(t *testing.T, ctx *fileio.Context) {
	t.Helper()
	im := &Importer{Ctx: ctx, Cfg: config.Default()}
	require.NoError(t, im.Run())
}

func TestImportProject(t *testing.T) {
	ctx := newProject(t)
	runImport(t, ctx)

	counts := map[string]int{
		"time_sim":        1,
		"weather_sta_cli": 1,
		"snow_sno":        1,
		"septic_sep":      1, // the short row drops
		"initial_cha":     1,
		"channel_cha":     2,
		"channel_con":     2,
		"channel_con_out": 1,
	}
	for table, want := range counts {
		n, err := ctx.Store.Count(table)
		require.NoError(t, err)
		assert.Equal(t, want, n, table)
	}

	// the node's weather station resolved by name
	var wst string
	require.NoError(t, ctx.Store.DB().QueryRow(`
		SELECT w.name FROM channel_con c
		JOIN weather_sta_cli w ON c.wst_id = w.id
		WHERE c.name = 'chan1'`).Scan(&wst))
	assert.Equal(t, "wst1", wst)

	// the edge resolved its target's ordinal to chan2's key
	var target string
	require.NoError(t, ctx.Store.DB().QueryRow(`
		SELECT t.name FROM channel_con_out o
		JOIN channel_con t ON o.obj_id = t.id`).Scan(&target))
	assert.Equal(t, "chan2", target)

	var version string
	require.NoError(t, ctx.Store.DB().QueryRow(
		"SELECT editor_version FROM project_config WHERE id = 1").Scan(&version))
	assert.Equal(t, config.Default().Project.EditorVersion, version)
}

// hru.con is read before channel.con, so an HRU routing into a channel
// only resolves if edge translation waits for every file's node pass.
func TestImportResolvesEdgesAcrossConnectionFiles(t *testing.T) {
	ctx := newProject(t)
	hruCon := strings.Join([]string{
		"hru.con: test project",
		"id name gis_id area lat lon elev hru wst cst ovfl rule out_tot",
		"1 hru1 1 10.0 35.0 -80.0 100.0 0 wst1 0 0 0 1 cha 1 tot 1.00000",
	}, "\n") + "\n"
	require.NoError(t, util.WriteFile(ctx.FS, "hru.con", []byte(hruCon), 0o644))

	runImport(t, ctx)

	var target string
	require.NoError(t, ctx.Store.DB().QueryRow(`
		SELECT c.name FROM hru_con_out o
		JOIN channel_con c ON o.obj_id = c.id`).Scan(&target))
	assert.Equal(t, "chan1", target)

	var unresolved int
	require.NoError(t, ctx.Store.DB().QueryRow(
		"SELECT COUNT(*) FROM hru_con_out WHERE obj_id IS NULL").Scan(&unresolved))
	assert.Equal(t, 0, unresolved)
}

func TestReimportConverges(t *testing.T) {
	ctx := newProject(t)
	runImport(t, ctx)
	runImport(t, ctx)

	for _, table := range []string{"channel_con", "channel_con_out", "snow_sno"} {
		n, err := ctx.Store.Count(table)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{
			"channel_con":     2,
			"channel_con_out": 1,
			"snow_sno":        1,
		}[table], n, table)
	}
}

func TestSkipGroups(t *testing.T) {
	ctx := newProject(t)
	cfg := config.Default()
	cfg.Import.SkipGroups = []string{"parm_db"}

	im := &Importer{Ctx: ctx, Cfg: cfg}
	require.NoError(t, im.Run())

	n, err := ctx.Store.Count("snow_sno")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ctx.Store.Count("channel_con")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExportRoundTrip(t *testing.T) {
	ctx := newProject(t)
	runImport(t, ctx)

	ex := &Exporter{Ctx: ctx, Cfg: config.Default()}
	require.NoError(t, ex.Run())

	data, err := util.ReadFile(ctx.FS, "channel.con")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)

	// the stored meta line replays verbatim
	assert.Equal(t, "channel.con: test project", lines[0])

	row1 := strings.Fields(lines[2])
	assert.Equal(t, "chan1", row1[1])
	assert.Equal(t, "wst1", row1[8])
	assert.Equal(t, []string{"cha", "2", "tot", "1.00000"}, row1[13:])

	// connection files for empty classes are not written
	_, err = ctx.FS.Stat("reservoir.con")
	require.Error(t, err)

	// a parameter file round-trips its rows
	data, err = util.ReadFile(ctx.FS, "septic.sep")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "sep1", strings.Fields(lines[2])[0])
}
