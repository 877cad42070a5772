package connect

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/basintools/basindb/internal/codec"
	"github.com/basintools/basindb/internal/store"
)

type conRow struct {
	id     int64
	name   string
	gisID  sql.NullInt64
	area   float64
	lat    sql.NullFloat64
	lon    sql.NullFloat64
	elev   sql.NullFloat64
	elemID sql.NullInt64
	wst    sql.NullString
	cstID  sql.NullInt64
	ovfl   int64
	rule   int64
}

type outRow struct {
	objTyp string
	objID  sql.NullInt64
	hydTyp string
	frac   float64
}

// WriteFile re-encodes one connection table as flat text. The ordinal
// index for every target type tag appearing anywhere in the edge set is
// built once up front, not per edge; node ids are re-derived as a 1-based
// sequence and edge ordinals are translated from surrogate keys back to
// positions within the current ascending-key enumeration.
func WriteFile(st *store.Store, w io.Writer, meta string, spec Spec) error {
	cons, err := loadCons(st, spec)
	if err != nil {
		return err
	}
	if len(cons) == 0 {
		return nil
	}

	ordIdx := store.NewOrdinalIndex(st)
	hasOuts, err := primeTagIndexes(st, spec, ordIdx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(meta)
	b.WriteByte('\n')
	writeConHeader(&b, spec.ElemName, hasOuts)

	for i, con := range cons {
		outs, err := loadOuts(st, spec, con.id)
		if err != nil {
			return err
		}
		if err := writeConRow(&b, spec, ordIdx, con, outs, i+1); err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// HasRows reports whether the spec's (possibly filtered) node set is
// non-empty, so callers can avoid creating an output file for nothing.
func HasRows(st *store.Store, spec Spec) (bool, error) {
	q := "SELECT COUNT(*) FROM " + spec.ConTable
	if spec.ElemWhere != "" {
		q += fmt.Sprintf(" WHERE %s IN (SELECT id FROM %s WHERE %s)",
			spec.ElemFK, spec.ElemTable, spec.ElemWhere)
	}
	var n int
	if err := st.DB().QueryRow(q).Scan(&n); err != nil {
		return false, fmt.Errorf("count %s: %w", spec.ConTable, err)
	}
	return n > 0, nil
}

func loadCons(st *store.Store, spec Spec) ([]conRow, error) {
	elemCol := "NULL"
	if spec.ElemFK != "" {
		elemCol = "con." + spec.ElemFK
	}
	q := fmt.Sprintf(`SELECT con.id, con.name, con.gis_id, con.area, con.lat, con.lon,
		con.elev, %s, w.name, con.cst_id, con.ovfl, con.rule
		FROM %s con LEFT JOIN weather_sta_cli w ON con.wst_id = w.id`,
		elemCol, spec.ConTable)
	if spec.ElemWhere != "" {
		q += fmt.Sprintf(" WHERE con.%s IN (SELECT id FROM %s WHERE %s)",
			spec.ElemFK, spec.ElemTable, spec.ElemWhere)
	}
	q += " ORDER BY con.id"

	rows, err := st.DB().Query(q)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", spec.ConTable, err)
	}
	defer func() { _ = rows.Close() }()

	var cons []conRow
	for rows.Next() {
		var c conRow
		if err := rows.Scan(&c.id, &c.name, &c.gisID, &c.area, &c.lat, &c.lon,
			&c.elev, &c.elemID, &c.wst, &c.cstID, &c.ovfl, &c.rule); err != nil {
			return nil, err
		}
		cons = append(cons, c)
	}
	return cons, rows.Err()
}

func loadOuts(st *store.Store, spec Spec, conID int64) ([]outRow, error) {
	rows, err := st.DB().Query(fmt.Sprintf(
		"SELECT obj_typ, obj_id, hyd_typ, frac FROM %s WHERE %s = ? ORDER BY ord",
		spec.OutTable, spec.OutFK), conID)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", spec.OutTable, err)
	}
	defer func() { _ = rows.Close() }()

	var outs []outRow
	for rows.Next() {
		var o outRow
		if err := rows.Scan(&o.objTyp, &o.objID, &o.hydTyp, &o.frac); err != nil {
			return nil, err
		}
		outs = append(outs, o)
	}
	return outs, rows.Err()
}

// primeTagIndexes validates and pre-builds the ordinal index for every
// distinct target tag in the edge set. An unregistered tag is fatal here,
// before any output is written.
func primeTagIndexes(st *store.Store, spec Spec, ordIdx *store.OrdinalIndex) (bool, error) {
	rows, err := st.DB().Query("SELECT DISTINCT obj_typ FROM " + spec.OutTable)
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()

	hasOuts := false
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return false, err
		}
		hasOuts = true
		if _, _, err := ordIdx.KeyAt(tag, 1); err != nil {
			return false, fmt.Errorf("%s: %w", spec.FileName, err)
		}
	}
	return hasOuts, rows.Err()
}

func writeConHeader(b *strings.Builder, elemName string, hasOuts bool) {
	b.WriteString(codec.PadIntText("id"))
	b.WriteString(codec.PadString("name"))
	b.WriteString(codec.PadIntText("gis_id"))
	b.WriteString(codec.PadNumText("area"))
	b.WriteString(codec.PadNumText("lat"))
	b.WriteString(codec.PadNumText("lon"))
	b.WriteString(codec.PadNumText("elev"))
	b.WriteString(codec.PadIntText(elemName))
	b.WriteString(codec.PadString("wst"))
	b.WriteString(codec.PadIntText("cst"))
	b.WriteString(codec.PadIntText("ovfl"))
	b.WriteString(codec.PadIntText("rule"))
	b.WriteString(codec.PadIntText("out_tot"))
	if hasOuts {
		b.WriteString(codec.PadCode("obj_typ"))
		b.WriteString(codec.PadIntText("obj_id"))
		b.WriteString(codec.PadCode("hyd_typ"))
		b.WriteString(codec.PadNumText("frac"))
	}
	b.WriteByte('\n')
}

func writeConRow(b *strings.Builder, spec Spec, ordIdx *store.OrdinalIndex, con conRow, outs []outRow, index int) error {
	b.WriteString(codec.PadInt(int64(index)))
	b.WriteString(codec.PadString(con.name))
	if con.gisID.Valid {
		b.WriteString(codec.PadInt(con.gisID.Int64))
	} else {
		b.WriteString(codec.PadIntText(codec.NullToken))
	}
	b.WriteString(codec.FormatValue(codec.Field{Kind: codec.Float, NonZeroMin: true}, con.area))
	b.WriteString(padNullNum(con.lat))
	b.WriteString(padNullNum(con.lon))
	b.WriteString(padNullNum(con.elev))

	// Element ordinal within the (possibly filtered) element table; for
	// classes without a backing element table the node's own index is
	// written, matching the identity layout of outlet files.
	elemOrd := index
	if spec.ElemFK != "" && con.elemID.Valid {
		ord, ok, err := ordIdx.TableOrdinalOf(spec.ElemTable, spec.ElemWhere, con.elemID.Int64)
		if err != nil {
			return err
		}
		if ok {
			elemOrd = ord
		} else {
			elemOrd = 0
		}
	}
	b.WriteString(codec.PadInt(int64(elemOrd)))

	if con.wst.Valid {
		b.WriteString(codec.PadString(con.wst.String))
	} else {
		b.WriteString(codec.PadString(codec.NullToken))
	}
	if con.cstID.Valid {
		b.WriteString(codec.PadInt(con.cstID.Int64))
	} else {
		b.WriteString(codec.PadInt(0))
	}
	b.WriteString(codec.PadInt(con.ovfl))
	b.WriteString(codec.PadInt(con.rule))
	b.WriteString(codec.PadInt(int64(len(outs))))

	for _, out := range outs {
		ord := 0
		if out.objID.Valid {
			o, ok, err := ordIdx.OrdinalOf(out.objTyp, out.objID.Int64)
			if err != nil {
				return fmt.Errorf("%s: %w", spec.FileName, err)
			}
			if ok {
				ord = o
			}
		}
		b.WriteString(codec.PadCode(out.objTyp))
		b.WriteString(codec.PadInt(int64(ord)))
		b.WriteString(codec.PadCode(out.hydTyp))
		b.WriteString(codec.PadNum(out.frac))
	}

	b.WriteByte('\n')
	return nil
}

func padNullNum(v sql.NullFloat64) string {
	if !v.Valid {
		return codec.PadNumText(codec.NullToken)
	}
	return codec.PadNum(v.Float64)
}
