package codec

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Default pad widths per column kind. Integer columns sit in a narrower
// right-justified field, names in a wider left-justified one.
const (
	DefaultIntPad  = 8
	DefaultStrPad  = 16
	DefaultNumPad  = 12
	DefaultCodePad = 10
)

// NonZeroMinValue replaces an exact zero in columns flagged NonZeroMin.
const NonZeroMinValue = 1e-6

// expThreshold is the magnitude below which floats switch to scientific
// notation so small fractions survive the fixed decimal format.
const expThreshold = 1e-4

// WriteTable renders records as fixed-width text: the meta line, one
// column-header line, then one row per record in field order.
func WriteTable(w io.Writer, meta string, spec TableSpec, rows []Record) error {
	var b strings.Builder
	b.WriteString(meta)
	b.WriteByte('\n')
	writeHeader(&b, spec)

	id := 1
	for _, rec := range rows {
		if spec.HasID {
			b.WriteString(PadInt(int64(id)))
			id++
		}
		for _, f := range spec.Fields {
			b.WriteString(FormatValue(f, rec[f.Name]))
		}
		if spec.Trailing != nil {
			b.WriteString(FormatValue(*spec.Trailing, rec[spec.Trailing.Name]))
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHeader(b *strings.Builder, spec TableSpec) {
	if spec.HasID {
		b.WriteString(pad("id", DefaultIntPad, false))
	}
	for _, f := range spec.Fields {
		b.WriteString(pad(f.Name, fieldPad(f), f.Left))
	}
	if spec.Trailing != nil {
		f := *spec.Trailing
		b.WriteString(pad(f.Name, fieldPad(f), f.Left))
	}
	b.WriteByte('\n')
}

// FormatValue renders one value in its field's fixed-width format.
// Absent values render as the null literal (or the field's override).
func FormatValue(f Field, v any) string {
	width := fieldPad(f)
	if v == nil {
		text := f.NullText
		if text == "" {
			text = NullToken
		}
		return pad(text, width, f.Left)
	}

	switch f.Kind {
	case Int:
		return pad(fmt.Sprintf("%d", toInt64(v)), width, f.Left)
	case Bool:
		n := int64(0)
		if bv, ok := v.(bool); ok && bv {
			n = 1
		} else if !ok {
			n = toInt64(v)
		}
		return pad(fmt.Sprintf("%d", n), width, f.Left)
	case Float:
		return pad(FormatFloat(toFloat64(v), f), width, f.Left)
	default:
		return pad(fmt.Sprint(v), width, f.Left)
	}
}

// FormatFloat renders a float with a fixed decimal format, switching to
// scientific notation for very small non-zero magnitudes.
func FormatFloat(v float64, f Field) string {
	if v == 0 && f.NonZeroMin {
		v = NonZeroMinValue
	}
	if f.Exp || (v != 0 && math.Abs(v) < expThreshold) {
		return fmt.Sprintf("%.5e", v)
	}
	return fmt.Sprintf("%.5f", v)
}

// PadInt renders an integer in the default right-justified integer field.
func PadInt(v int64) string {
	return pad(fmt.Sprintf("%d", v), DefaultIntPad, false)
}

// PadIntText renders text (a header label or null literal) in the
// integer field.
func PadIntText(s string) string {
	return pad(s, DefaultIntPad, false)
}

// PadNumText renders text in the numeric field.
func PadNumText(s string) string {
	return pad(s, DefaultNumPad, false)
}

// PadString renders text in the default left-justified name field.
func PadString(s string) string {
	return pad(s, DefaultStrPad, true)
}

// PadCode renders a short code in the default code field.
func PadCode(s string) string {
	return pad(s, DefaultCodePad, false)
}

// PadNum renders a float in the default numeric field.
func PadNum(v float64) string {
	return pad(FormatFloat(v, Field{Kind: Float}), DefaultNumPad, false)
}

func fieldPad(f Field) int {
	if f.Pad > 0 {
		return f.Pad
	}
	switch f.Kind {
	case Int, Bool:
		return DefaultIntPad
	case Float:
		return DefaultNumPad
	case Code:
		return DefaultCodePad
	default:
		return DefaultStrPad
	}
}

func pad(s string, width int, left bool) string {
	if len(s) >= width {
		return s + " "
	}
	if left {
		return s + strings.Repeat(" ", width-len(s)) + " "
	}
	return strings.Repeat(" ", width-len(s)) + s + " "
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
