package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// NullToken is the literal that always decodes to an absent value,
// regardless of the target column type. Case-sensitive.
const NullToken = "null"

// ReadStats reports what happened to the rows of one file.
type ReadStats struct {
	Rows    int // decoded rows
	Skipped int // rows dropped for missing required tokens
	Padded  int // short rows completed with defaults
	Meta    string
}

// ReadTable decodes a flat file into records per the spec. The first two
// lines are a header/comment block: line one is captured verbatim into
// stats.Meta for round-trip, line two (the column header) is skipped.
// Malformed rows are dropped and counted, never raised.
func ReadTable(r io.Reader, spec TableSpec) ([]Record, ReadStats, error) {
	var (
		stats ReadStats
		rows  []Record
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			stats.Meta = sc.Text()
			continue
		}
		if line == 2 {
			continue
		}

		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}

		if len(tokens) < spec.MinCols {
			if spec.Policy == SkipShort {
				stats.Skipped++
				continue
			}
			for len(tokens) < spec.Cols() {
				tokens = append(tokens, "0")
			}
			stats.Padded++
		}

		rows = append(rows, decodeRow(tokens, spec))
		stats.Rows++
	}
	if err := sc.Err(); err != nil {
		return nil, stats, err
	}
	return rows, stats, nil
}

func decodeRow(tokens []string, spec TableSpec) Record {
	rec := make(Record, len(spec.Fields)+1)

	off := 0
	if spec.HasID {
		off = 1
	}
	for i, f := range spec.Fields {
		idx := off + i
		if idx >= len(tokens) {
			rec[f.Name] = padDefault(f)
			continue
		}
		rec[f.Name] = DecodeToken(f, tokens[idx])
	}

	if spec.Trailing != nil {
		rec[spec.Trailing.Name] = nil
		if len(tokens) > spec.Cols() {
			last := tokens[len(tokens)-1]
			if last != NullToken {
				rec[spec.Trailing.Name] = last
			}
		}
	}
	return rec
}

// DecodeToken converts one token to the field's value. The null sentinel
// decodes to nil for every kind; a numeric token that fails to parse is
// preserved as nil rather than converted or raised.
func DecodeToken(f Field, tok string) any {
	if tok == NullToken {
		return nil
	}
	switch f.Kind {
	case Int:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil
		}
		return n
	case Float:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil
		}
		return v
	case Bool:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil
		}
		return n != 0
	default:
		if f.Lower {
			return strings.ToLower(tok)
		}
		return tok
	}
}

// padDefault is the fill value for a missing trailing token under the
// PadShort policy: zero for numeric kinds, absent for everything else.
func padDefault(f Field) any {
	switch f.Kind {
	case Int:
		return int64(0)
	case Float:
		return float64(0)
	case Bool:
		return false
	default:
		return nil
	}
}
