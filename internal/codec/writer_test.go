package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.50000", FormatFloat(1.5, Field{Kind: Float}))
	assert.Equal(t, "0.00000", FormatFloat(0, Field{Kind: Float}))

	// small magnitudes switch to scientific notation so they survive the
	// fixed decimal format
	assert.Equal(t, "5.00000e-05", FormatFloat(0.00005, Field{Kind: Float}))
	assert.Equal(t, "-5.00000e-05", FormatFloat(-0.00005, Field{Kind: Float}))
	assert.Equal(t, "0.00010", FormatFloat(0.0001, Field{Kind: Float}))

	// placeholder zeros become the minimum positive value
	assert.Equal(t, "1.00000e-06", FormatFloat(0, Field{Kind: Float, NonZeroMin: true}))
	assert.Equal(t, "2.00000", FormatFloat(2, Field{Kind: Float, NonZeroMin: true}))
}

func TestFormatValueNull(t *testing.T) {
	assert.Equal(t, "null", strings.TrimSpace(FormatValue(Field{Kind: Int}, nil)))
	assert.Equal(t, "null", strings.TrimSpace(FormatValue(Field{Kind: String}, nil)))
	assert.Equal(t, "0", strings.TrimSpace(FormatValue(Field{Kind: Int, NullText: "0"}, nil)))
}

func TestWriteTableRederivesIDs(t *testing.T) {
	spec := TableSpec{
		Table:   "t",
		HasID:   true,
		MinCols: 3,
		Fields: []Field{
			{Name: "name", Kind: String, Left: true},
			{Name: "area", Kind: Float},
		},
	}
	rows := []Record{
		{"name": "a", "area": 1.0},
		{"name": "b", "area": 2.0},
	}

	var b strings.Builder
	require.NoError(t, WriteTable(&b, "t.file: meta", spec, rows))

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "t.file: meta", lines[0])

	first := strings.Fields(lines[2])
	second := strings.Fields(lines[3])
	assert.Equal(t, []string{"1", "a", "1.00000"}, first)
	assert.Equal(t, []string{"2", "b", "2.00000"}, second)
}

func TestRoundTripNull(t *testing.T) {
	f := Field{Name: "gis_id", Kind: Int, Nullable: true}
	rendered := strings.TrimSpace(FormatValue(f, nil))
	assert.Nil(t, DecodeToken(f, rendered))
}
