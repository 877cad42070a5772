// Package fileio binds each model input file to its table spec and runs
// the generic decode/resolve/upsert and query/encode passes. File formats
// with structure the generic passes cannot express (nested soil layers,
// formats the database has no tables for yet) plug in custom functions.
package fileio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/basintools/basindb/internal/codec"
	"github.com/basintools/basindb/internal/store"
)

// ErrNotImplemented marks a file format that is recognized but has no
// codec yet. Callers skip the file and continue; any other error aborts.
var ErrNotImplemented = errors.New("file format not implemented")

// Context carries the shared state of one import or export run.
type Context struct {
	Store *store.Store
	Res   *store.Resolver
	FS    billy.Filesystem
	Dir   string // directory holding the text files, relative to FS
	Log   *zap.SugaredLogger

	// Version is stamped into generated metadata lines when a file has
	// no stored meta to replay.
	Version string
}

// File binds one input file to its spec. Import and Export run the
// generic passes unless overridden.
type File struct {
	Name string
	Spec codec.TableSpec

	// OnRecord mutates each decoded record before it is stored (derived
	// columns the file itself does not carry).
	OnRecord func(codec.Record)

	// Store overrides the upsert column set when it differs from the
	// file's field list.
	Store []codec.Field

	// OrderBy overrides the export row order ("t.id" by default).
	OrderBy string

	ImportFn func(*Context, *File) error
	ExportFn func(*Context, *File) error
}

func (f *File) storeFields() []codec.Field {
	if f.Store != nil {
		return f.Store
	}
	return f.Spec.StoreFields()
}

// Import decodes the file into its table. A missing file is not an
// error: the run continues with whatever files the project has.
func (f *File) Import(ctx *Context) error {
	if f.ImportFn != nil {
		return f.ImportFn(ctx, f)
	}
	return importTable(ctx, f)
}

func importTable(ctx *Context, f *File) error {
	r, ok, err := ctx.OpenInput(f.Name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	defer func() { _ = r.Close() }()

	rows, stats, err := codec.ReadTable(r, f.Spec)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	for _, rec := range rows {
		if err := resolveRefs(ctx, f.Spec.StoreFields(), rec); err != nil {
			return err
		}
		if f.OnRecord != nil {
			f.OnRecord(rec)
		}
	}

	if err := ctx.Store.BulkUpsert(f.Spec.Table, f.storeFields(), rows); err != nil {
		return fmt.Errorf("store %s: %w", f.Name, err)
	}
	if err := ctx.Store.SetFileMeta(f.Name, stats.Meta); err != nil {
		return err
	}

	ctx.Log.Infow("imported file",
		"file", f.Name, "rows", stats.Rows,
		"skipped", stats.Skipped, "padded", stats.Padded)
	return nil
}

// Export re-encodes the file's table as flat text. An empty table writes
// nothing: the file is simply absent from the output set.
func (f *File) Export(ctx *Context) error {
	if f.ExportFn != nil {
		return f.ExportFn(ctx, f)
	}
	return exportTable(ctx, f)
}

func exportTable(ctx *Context, f *File) error {
	rows, err := queryRecords(ctx, f.Spec, f.OrderBy)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	w, err := ctx.CreateOutput(f.Name)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	meta, err := ctx.MetaLine(f.Name)
	if err != nil {
		return err
	}
	if err := codec.WriteTable(w, meta, f.Spec, rows); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	ctx.Log.Infow("exported file", "file", f.Name, "rows", len(rows))
	return nil
}

// resolveRefs replaces each name-reference field's textual value with
// the referenced record's surrogate key. An unresolvable name stores
// NULL, not an error: optional relationships stay optional.
func resolveRefs(ctx *Context, fields []codec.Field, rec codec.Record) error {
	for _, f := range fields {
		if f.Kind != codec.Name || f.RefTable == "" {
			continue
		}
		name, ok := rec[f.Name].(string)
		if !ok {
			rec[f.Name] = nil
			continue
		}
		id, found, err := ctx.Res.Lookup(f.RefTable, name)
		if err != nil {
			return err
		}
		if found {
			rec[f.Name] = id
		} else {
			rec[f.Name] = nil
		}
	}
	return nil
}

// queryRecords loads a table back into records, rendering each name
// reference through a join so the file carries names, not keys.
func queryRecords(ctx *Context, spec codec.TableSpec, orderBy string) ([]codec.Record, error) {
	fields := spec.StoreFields()
	q := exportQuery(spec, fields, orderBy)

	rows, err := ctx.Store.DB().Query(q)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", spec.Table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []codec.Record
	for rows.Next() {
		holders := make([]any, len(fields))
		for i, f := range fields {
			holders[i] = scanHolder(f.Kind)
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, err
		}
		rec := make(codec.Record, len(fields))
		for i, f := range fields {
			rec[f.Name] = holderValue(holders[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func exportQuery(spec codec.TableSpec, fields []codec.Field, orderBy string) string {
	cols := make([]string, len(fields))
	joins := ""
	for i, f := range fields {
		if f.Kind == codec.Name && f.RefTable != "" {
			alias := fmt.Sprintf("r%d", i)
			cols[i] = alias + ".name"
			joins += fmt.Sprintf(" LEFT JOIN %s %s ON t.%s = %s.id",
				f.RefTable, alias, f.Column(), alias)
		} else {
			cols[i] = "t." + f.Name
		}
	}
	if orderBy == "" {
		orderBy = "t.id"
	}
	q := "SELECT "
	for i, c := range cols {
		if i > 0 {
			q += ", "
		}
		q += c
	}
	return q + " FROM " + spec.Table + " t" + joins + " ORDER BY " + orderBy
}

func scanHolder(k codec.Kind) any {
	switch k {
	case codec.Int, codec.Bool:
		return new(sql.NullInt64)
	case codec.Float:
		return new(sql.NullFloat64)
	default:
		return new(sql.NullString)
	}
}

func holderValue(h any) any {
	switch v := h.(type) {
	case *sql.NullInt64:
		if !v.Valid {
			return nil
		}
		return v.Int64
	case *sql.NullFloat64:
		if !v.Valid {
			return nil
		}
		return v.Float64
	case *sql.NullString:
		if !v.Valid {
			return nil
		}
		return v.String
	default:
		return nil
	}
}

// metaLine replays the stored first line of the file, or stamps a fresh
// one when the file was never imported.
func (c *Context) MetaLine(fileName string) (string, error) {
	meta, err := c.Store.FileMeta(fileName)
	if err != nil {
		return "", err
	}
	if meta != "" {
		return meta, nil
	}
	return fmt.Sprintf("%s: written by basindb %s on %s", fileName,
		c.Version, time.Now().Format("2006-01-02 15:04")), nil
}

// fileExists reports whether the named input file is present, returning
// its joined path either way.
func (c *Context) fileExists(name string) (string, bool, error) {
	p := path.Join(c.Dir, name)
	if _, err := c.FS.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, false, nil
		}
		return p, false, err
	}
	return p, true, nil
}

func (c *Context) OpenInput(name string) (billy.File, bool, error) {
	p, ok, err := c.fileExists(name)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		c.Log.Debugw("file not present, skipping", "file", name)
		return nil, false, nil
	}
	f, err := c.FS.Open(p)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", name, err)
	}
	return f, true, nil
}

func (c *Context) CreateOutput(name string) (billy.File, error) {
	f, err := c.FS.Create(path.Join(c.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return f, nil
}
