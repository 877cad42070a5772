// Package connect reads and writes the node + edge-list connection file
// format. Nodes are connectable objects (channels, reservoirs, HRUs, …);
// each node line carries a declared outgoing edge count followed by that
// many (obj_typ, obj_id, hyd_typ, frac) groups, where obj_id is the
// target's 1-based ordinal within its type tag, not a stable key.
package connect

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/basintools/basindb/internal/codec"
	"github.com/basintools/basindb/internal/store"
	"go.uber.org/zap"
)

// conMinCols is the fixed token count of a node line before its edge
// groups: id name gis_id area lat lon elev elem wst cst ovfl rule out_tot.
const conMinCols = 13

// Spec binds one connection file format to its tables.
type Spec struct {
	FileName string
	ConTable string
	OutTable string
	OutFK    string // owning-node FK column of the edge table

	ElemName  string // element column header ("cha", "res", "hru", …)
	ElemTable string // element table the node's elem ordinal enumerates
	ElemFK    string // element FK column on the node table

	// ElemWhere filters the element table for formats that draw on a
	// logically partitioned subset of a shared table (recall vs export
	// coefficient sources). Empty means the whole table.
	ElemWhere string
}

// Stats summarizes one file's decode.
type Stats struct {
	Nodes      int
	Edges      int
	Skipped    int // node lines with too few tokens
	Unresolved int // edges whose target ordinal was out of range
	Meta       string
}

type pendingNode struct {
	name  string
	edges [][4]string
}

// conStoreFields is the upsert column set for a node table.
func conStoreFields(elemFK string) []codec.Field {
	fields := []codec.Field{
		{Name: "name", Kind: codec.String},
		{Name: "gis_id", Kind: codec.Int, Nullable: true},
		{Name: "area", Kind: codec.Float},
		{Name: "lat", Kind: codec.Float, Nullable: true},
		{Name: "lon", Kind: codec.Float, Nullable: true},
		{Name: "elev", Kind: codec.Float, Nullable: true},
		{Name: "wst_id", Kind: codec.Int, Nullable: true},
		{Name: "cst_id", Kind: codec.Int, Nullable: true},
		{Name: "ovfl", Kind: codec.Int},
		{Name: "rule", Kind: codec.Int},
	}
	if elemFK != "" {
		fields = append(fields, codec.Field{Name: elemFK, Kind: codec.Int, Nullable: true})
	}
	return fields
}

// outStoreFields is the upsert column set for an edge table.
func outStoreFields(fk string) []codec.Field {
	return []codec.Field{
		{Name: fk, Kind: codec.Int},
		{Name: "ord", Kind: codec.Int},
		{Name: "obj_typ", Kind: codec.Code},
		{Name: "obj_id", Kind: codec.Int, Nullable: true},
		{Name: "hyd_typ", Kind: codec.Code},
		{Name: "frac", Kind: codec.Float},
	}
}

// FileData is one connection file after its node pass: node records are
// in the database, edges are parsed but deferred. Edges are translated
// only once every connection file's nodes exist, because a target
// ordinal may enumerate a table filled by a different file.
type FileData struct {
	Spec    Spec
	Stats   Stats
	pending []pendingNode
}

// ReadNodes decodes one connection file's node lines and bulk-inserts
// them, deferring the edge groups. Call ResolveEdges after every file's
// nodes are in.
func ReadNodes(st *store.Store, res *store.Resolver, r io.Reader, spec Spec) (*FileData, error) {
	d := &FileData{Spec: spec}

	elemIdx := store.NewOrdinalIndex(st)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		nodes   []codec.Record
		lineNum int
	)
	for sc.Scan() {
		lineNum++
		if lineNum == 1 {
			d.Stats.Meta = sc.Text()
			continue
		}
		if lineNum == 2 {
			continue
		}

		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < conMinCols {
			d.Stats.Skipped++
			continue
		}

		rec, node, err := decodeNode(tokens, spec, res, elemIdx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", spec.FileName, lineNum, err)
		}
		nodes = append(nodes, rec)
		d.pending = append(d.pending, node)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if err := st.BulkUpsert(spec.ConTable, conStoreFields(spec.ElemFK), nodes); err != nil {
		return nil, err
	}
	d.Stats.Nodes = len(nodes)
	return d, nil
}

// ResolveEdges re-derives each node's surrogate key from its unique
// name, translates each deferred edge's target ordinal through the
// ordinal index and bulk-inserts the edges. The index must be built
// after every connection file's node pass: edges may reference nodes
// later in the same file, the node itself, or a different table
// entirely.
func (d *FileData) ResolveEdges(st *store.Store, res *store.Resolver, ordIdx *store.OrdinalIndex, log *zap.SugaredLogger) error {
	spec := d.Spec

	var edges []codec.Record
	for _, node := range d.pending {
		conID, ok, err := res.Lookup(spec.ConTable, node.name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		for j, e := range node.edges {
			rec := codec.Record{
				spec.OutFK: conID,
				"ord":      int64(j + 1),
				"obj_typ":  e[0],
				"hyd_typ":  e[2],
				"frac":     codec.DecodeToken(codec.Field{Kind: codec.Float}, e[3]),
			}
			ord, _ := codec.DecodeToken(codec.Field{Kind: codec.Int}, e[1]).(int64)
			key, ok, err := ordIdx.KeyAt(e[0], int(ord))
			if err != nil {
				return fmt.Errorf("%s: node %s: %w", spec.FileName, node.name, err)
			}
			if ok {
				rec["obj_id"] = key
			} else {
				d.Stats.Unresolved++
				if log != nil {
					log.Warnw("unresolved connection target",
						"file", spec.FileName, "node", node.name,
						"obj_typ", e[0], "ordinal", ord)
				}
			}
			edges = append(edges, rec)
		}
	}

	if err := st.BulkUpsert(spec.OutTable, outStoreFields(spec.OutFK), edges); err != nil {
		return err
	}
	d.Stats.Edges = len(edges)
	return nil
}

// ReadFile decodes one connection file end to end: the node pass, then
// the edge pass against a fresh index. Only valid when the file's edges
// target no table filled by a later file; multi-file imports must stage
// ReadNodes for every file before resolving any edges.
func ReadFile(st *store.Store, res *store.Resolver, r io.Reader, spec Spec, log *zap.SugaredLogger) (Stats, error) {
	d, err := ReadNodes(st, res, r, spec)
	if err != nil {
		return Stats{}, err
	}
	if err := d.ResolveEdges(st, res, store.NewOrdinalIndex(st), log); err != nil {
		return d.Stats, err
	}
	return d.Stats, nil
}

func decodeNode(tokens []string, spec Spec, res *store.Resolver, elemIdx *store.OrdinalIndex) (codec.Record, pendingNode, error) {
	intF := codec.Field{Kind: codec.Int}
	numF := codec.Field{Kind: codec.Float}

	rec := codec.Record{
		"name":   tokens[1],
		"gis_id": codec.DecodeToken(intF, tokens[2]),
		"area":   codec.DecodeToken(numF, tokens[3]),
		"lat":    codec.DecodeToken(numF, tokens[4]),
		"lon":    codec.DecodeToken(numF, tokens[5]),
		"elev":   codec.DecodeToken(numF, tokens[6]),
		"ovfl":   codec.DecodeToken(intF, tokens[10]),
		"rule":   codec.DecodeToken(intF, tokens[11]),
	}

	// cst is 0 when unassigned; store NULL like other absent references.
	if cst, ok := codec.DecodeToken(intF, tokens[9]).(int64); ok && cst > 0 {
		rec["cst_id"] = cst
	}

	if wst := tokens[8]; wst != codec.NullToken {
		id, ok, err := res.Lookup("weather_sta_cli", wst)
		if err != nil {
			return nil, pendingNode{}, err
		}
		if ok {
			rec["wst_id"] = id
		}
	}

	// The elem column is an ordinal into this file's element table,
	// conceptually the same scheme as edges but fixed to one type.
	if spec.ElemFK != "" {
		if ord, ok := codec.DecodeToken(intF, tokens[7]).(int64); ok {
			key, found, err := elemIdx.TableKeyAt(spec.ElemTable, spec.ElemWhere, int(ord))
			if err != nil {
				return nil, pendingNode{}, err
			}
			if found {
				rec[spec.ElemFK] = key
			}
		}
	}

	node := pendingNode{name: tokens[1]}
	outTot, _ := codec.DecodeToken(intF, tokens[12]).(int64)
	for j := 0; j < int(outTot); j++ {
		base := conMinCols + 4*j
		if base+3 >= len(tokens) {
			break
		}
		node.edges = append(node.edges,
			[4]string{tokens[base], tokens[base+1], tokens[base+2], tokens[base+3]})
	}
	return rec, node, nil
}
