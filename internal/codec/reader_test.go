package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func septicSpec() TableSpec {
	fields := []Field{{Name: "name", Kind: String, Left: true, Lower: true}}
	for _, n := range []string{"q_rate", "bod", "tss", "nh4_n", "no3_n",
		"no2_n", "org_n", "min_p", "org_p", "fcoli"} {
		fields = append(fields, Field{Name: n, Kind: Float, Nullable: true})
	}
	return TableSpec{
		Table:    "septic_sep",
		MinCols:  11,
		Policy:   SkipShort,
		Fields:   fields,
		Trailing: &Field{Name: "description", Kind: String, Nullable: true, Left: true},
	}
}

func TestReadTableSkipsShortRows(t *testing.T) {
	input := strings.Join([]string{
		"septic.sep: test data",
		"name q_rate bod tss nh4_n no3_n no2_n org_n min_p org_p fcoli",
		"SEPTIC_A 1.0 2.0 3.0 4.0 5.0 6.0 7.0 8.0 9.0 10.0",
		"broken_row 1.0 2.0",
		"septic_b 1.5 2.5 3.5 4.5 5.5 6.5 7.5 8.5 9.5 10.5 residential conventional",
	}, "\n")

	rows, stats, err := ReadTable(strings.NewReader(input), septicSpec())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Padded)
	assert.Equal(t, "septic.sep: test data", stats.Meta)

	// names fold to lower case
	assert.Equal(t, "septic_a", rows[0]["name"])
	assert.Equal(t, 1.0, rows[0]["q_rate"])
	assert.Nil(t, rows[0]["description"])

	// extra tokens beyond the fixed columns: last one is the description
	assert.Equal(t, "septic_b", rows[1]["name"])
	assert.Equal(t, "conventional", rows[1]["description"])
}

func TestReadTablePadsShortRows(t *testing.T) {
	spec := TableSpec{
		Table:   "snow_sno",
		MinCols: 9,
		Policy:  PadShort,
		Fields: []Field{
			{Name: "name", Kind: String, Left: true, Lower: true},
			{Name: "fall_tmp", Kind: Float, Nullable: true},
			{Name: "melt_tmp", Kind: Float, Nullable: true},
			{Name: "melt_max", Kind: Float, Nullable: true},
			{Name: "melt_min", Kind: Float, Nullable: true},
			{Name: "tmp_lag", Kind: Float, Nullable: true},
			{Name: "snow_h2o", Kind: Float, Nullable: true},
			{Name: "cov50", Kind: Float, Nullable: true},
			{Name: "snow_init", Kind: Float, Nullable: true},
		},
	}

	input := strings.Join([]string{
		"snow.sno: test data",
		"name fall_tmp melt_tmp melt_max melt_min tmp_lag snow_h2o cov50 snow_init",
		"SNOW1 1.0 0.5 4.5 0.5 1.0 0.0 0.5",
	}, "\n")

	rows, stats, err := ReadTable(strings.NewReader(input), spec)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 1, stats.Padded)
	assert.Equal(t, 0, stats.Skipped)

	// the missing ninth column pads with zero, everything else survives
	assert.Equal(t, "snow1", rows[0]["name"])
	assert.Equal(t, 0.5, rows[0]["cov50"])
	assert.Equal(t, 0.0, rows[0]["snow_init"])
}

func TestDecodeToken(t *testing.T) {
	assert.Nil(t, DecodeToken(Field{Kind: Int}, "null"))
	assert.Nil(t, DecodeToken(Field{Kind: Float}, "null"))
	assert.Nil(t, DecodeToken(Field{Kind: String}, "null"))

	// the sentinel is case-sensitive
	assert.Equal(t, "NULL", DecodeToken(Field{Kind: String}, "NULL"))

	assert.Equal(t, int64(42), DecodeToken(Field{Kind: Int}, "42"))
	assert.Equal(t, 3.5, DecodeToken(Field{Kind: Float}, "3.5"))
	assert.Equal(t, true, DecodeToken(Field{Kind: Bool}, "1"))
	assert.Equal(t, false, DecodeToken(Field{Kind: Bool}, "0"))

	// unparseable numerics decode to absent, not zero
	assert.Nil(t, DecodeToken(Field{Kind: Float}, "abc"))
	assert.Nil(t, DecodeToken(Field{Kind: Int}, "1.5"))

	assert.Equal(t, "loam", DecodeToken(Field{Kind: String, Lower: true}, "LOAM"))
}
