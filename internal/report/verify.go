// Package report inspects an imported project database and summarizes
// its health: row counts, unresolved connection targets, and edge order
// gaps that would corrupt a later export.
package report

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/basintools/basindb/internal/connect"
	"github.com/basintools/basindb/internal/store"
)

type TableCount struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

type ConnectionHealth struct {
	File       string `json:"file"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Unresolved int    `json:"unresolved"` // edges with a NULL target
	OrderGaps  int    `json:"order_gaps"` // owners whose edge order is not 1..n
}

type Report struct {
	Database    string             `json:"database"`
	Tables      []TableCount       `json:"tables"`
	Connections []ConnectionHealth `json:"connections"`
	Healthy     bool               `json:"healthy"`
}

// Verify builds the health report for a project database.
func Verify(st *store.Store) (*Report, error) {
	rep := &Report{Database: st.Path(), Healthy: true}

	for _, table := range store.ProjectTables() {
		n, err := st.Count(table)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			rep.Tables = append(rep.Tables, TableCount{Table: table, Rows: n})
		}
	}

	seen := map[string]bool{}
	for _, spec := range connect.All {
		if seen[spec.ConTable] {
			continue
		}
		seen[spec.ConTable] = true

		h := ConnectionHealth{File: spec.FileName}
		var err error
		if h.Nodes, err = st.Count(spec.ConTable); err != nil {
			return nil, err
		}
		if h.Edges, err = st.Count(spec.OutTable); err != nil {
			return nil, err
		}
		if err := st.DB().QueryRow(
			"SELECT COUNT(*) FROM " + spec.OutTable + " WHERE obj_id IS NULL").
			Scan(&h.Unresolved); err != nil {
			return nil, err
		}
		if h.OrderGaps, err = orderGaps(st, spec); err != nil {
			return nil, err
		}
		if h.Nodes > 0 || h.Edges > 0 {
			rep.Connections = append(rep.Connections, h)
		}
		if h.Unresolved > 0 || h.OrderGaps > 0 {
			rep.Healthy = false
		}
	}
	return rep, nil
}

// orderGaps counts owners whose edges do not form a contiguous 1-based
// sequence. For n edges the orders must be exactly 1..n: min 1, max n,
// all distinct (the unique constraint guarantees distinctness).
func orderGaps(st *store.Store, spec connect.Spec) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM (
		SELECT %[1]s FROM %[2]s
		GROUP BY %[1]s
		HAVING MIN(ord) != 1 OR MAX(ord) != COUNT(*)
	)`, spec.OutFK, spec.OutTable)
	var n int
	if err := st.DB().QueryRow(q).Scan(&n); err != nil {
		return 0, fmt.Errorf("order gaps %s: %w", spec.OutTable, err)
	}
	return n, nil
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	s := oj.JSON(r, &oj.Options{Indent: 2, OmitNil: true, UseTags: true})
	_, err := io.WriteString(w, s+"\n")
	return err
}
