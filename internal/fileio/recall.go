package fileio

import (
	"fmt"

	"github.com/basintools/basindb/internal/codec"
)

// Recall point sources. rec_typ partitions the table: 1-3 are recall
// time series, 4 marks constant export coefficient sources. Each row
// names the data file carrying its daily series; those files are loaded
// into recall_dat right after the index file.
var Recall = &File{
	Name: "recall.rec",
	Spec: codec.TableSpec{
		Table:   "recall_rec",
		MinCols: 3,
		HasID:   true,
		Fields:  []codec.Field{nameCol(), intf("rec_typ"), str("file")},
	},
	ImportFn: importRecall,
	ExportFn: exportRecall,
}

var recallDatSpec = codec.TableSpec{
	Table:   "recall_dat",
	MinCols: 5,
	Fields: fieldsOf(
		[]codec.Field{intf("yr"), intf("jday")},
		nums("flo", "sed", "orgn"),
	),
}

func importRecall(ctx *Context, f *File) error {
	if err := importTable(ctx, f); err != nil {
		return err
	}

	rows, err := ctx.Store.DB().Query(
		"SELECT id, file FROM recall_rec WHERE file IS NOT NULL ORDER BY id")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	type pointer struct {
		id   int64
		file string
	}
	var pointers []pointer
	for rows.Next() {
		var p pointer
		if err := rows.Scan(&p.id, &p.file); err != nil {
			return err
		}
		pointers = append(pointers, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fields := append([]codec.Field{intf("recall_rec_id")},
		recallDatSpec.StoreFields()...)
	for _, p := range pointers {
		r, ok, err := ctx.OpenInput(p.file)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Log.Warnw("recall data file missing", "file", p.file)
			continue
		}
		data, stats, err := codec.ReadTable(r, recallDatSpec)
		_ = r.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", p.file, err)
		}
		for _, rec := range data {
			rec["recall_rec_id"] = p.id
		}
		if err := ctx.Store.BulkUpsert("recall_dat", fields, data); err != nil {
			return fmt.Errorf("store %s: %w", p.file, err)
		}
		if err := ctx.Store.SetFileMeta(p.file, stats.Meta); err != nil {
			return err
		}
		ctx.Log.Infow("imported recall data", "file", p.file, "rows", stats.Rows)
	}
	return nil
}

func exportRecall(ctx *Context, f *File) error {
	if err := exportTable(ctx, f); err != nil {
		return err
	}

	rows, err := ctx.Store.DB().Query(
		"SELECT id, file FROM recall_rec WHERE file IS NOT NULL ORDER BY id")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	type pointer struct {
		id   int64
		file string
	}
	var pointers []pointer
	for rows.Next() {
		var p pointer
		if err := rows.Scan(&p.id, &p.file); err != nil {
			return err
		}
		pointers = append(pointers, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range pointers {
		data, err := queryRecallData(ctx, p.id)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		w, err := ctx.CreateOutput(p.file)
		if err != nil {
			return err
		}
		meta, err := ctx.MetaLine(p.file)
		if err != nil {
			_ = w.Close()
			return err
		}
		if err := codec.WriteTable(w, meta, recallDatSpec, data); err != nil {
			_ = w.Close()
			return fmt.Errorf("write %s: %w", p.file, err)
		}
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

func queryRecallData(ctx *Context, recID int64) ([]codec.Record, error) {
	fields := recallDatSpec.StoreFields()
	rows, err := ctx.Store.DB().Query(`SELECT yr, jday, flo, sed, orgn
		FROM recall_dat WHERE recall_rec_id = ? ORDER BY yr, jday`, recID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []codec.Record
	for rows.Next() {
		holders := make([]any, len(fields))
		for i, fld := range fields {
			holders[i] = scanHolder(fld.Kind)
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, err
		}
		rec := make(codec.Record, len(fields))
		for i, fld := range fields {
			rec[fld.Name] = holderValue(holders[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var Exco = &File{
	Name: "exco.exc",
	Spec: codec.TableSpec{
		Table:   "exco_exc",
		MinCols: 7,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("flo", "sed", "orgn", "sedp", "no3", "solp"),
		),
	},
}

var Delratio = &File{
	Name: "delratio.del",
	Spec: codec.TableSpec{
		Table:   "delratio_del",
		MinCols: 7,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("flo", "sed", "orgn", "sedp", "no3", "solp"),
		),
	},
}
