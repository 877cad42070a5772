package fileio

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/basintools/basindb/internal/codec"
)

// Soils are the one nested format: each soil header row declares a layer
// count (nly) and is followed by that many layer rows. The generic
// line-per-record passes cannot express it, so both directions are
// custom.
var Soils = &File{
	Name:     "soils.sol",
	Spec:     codec.TableSpec{Table: "soils_sol"},
	ImportFn: importSoils,
	ExportFn: exportSoils,
}

var soilFields = []codec.Field{
	nameCol(),
	str("hyd_grp"),
	num("dp_tot"), num("anion_excl"), num("perc_crk"),
	str("texture"),
}

var soilLayerCols = []string{
	"dp", "bd", "awc", "soil_k", "carbon", "clay", "silt", "sand",
	"rock", "alb", "usle_k", "ec", "caco3", "ph",
}

func soilLayerFields() []codec.Field {
	fields := []codec.Field{intf("soil_id"), intf("layer_num")}
	return append(fields, nums(soilLayerCols...)...)
}

func importSoils(ctx *Context, f *File) error {
	r, ok, err := ctx.OpenInput(f.Name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	defer func() { _ = r.Close() }()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		meta    string
		soils   []codec.Record
		layers  [][]codec.Record // parallel to soils, keyed up after upsert
		numF    = codec.Field{Kind: codec.Float}
		intF    = codec.Field{Kind: codec.Int}
		lineNum int
		skipped int
	)
	for sc.Scan() {
		lineNum++
		if lineNum == 1 {
			meta = sc.Text()
			continue
		}
		if lineNum == 2 {
			continue
		}
		tokens := strings.Fields(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < 7 {
			skipped++
			continue
		}

		soils = append(soils, codec.Record{
			"name":       tokens[0],
			"hyd_grp":    codec.DecodeToken(codec.Field{Kind: codec.String}, tokens[2]),
			"dp_tot":     codec.DecodeToken(numF, tokens[3]),
			"anion_excl": codec.DecodeToken(numF, tokens[4]),
			"perc_crk":   codec.DecodeToken(numF, tokens[5]),
			"texture":    codec.DecodeToken(codec.Field{Kind: codec.String}, tokens[6]),
		})

		nly, _ := codec.DecodeToken(intF, tokens[1]).(int64)
		rows := make([]codec.Record, 0, nly)
		for l := int64(0); l < nly && sc.Scan(); l++ {
			lineNum++
			lt := strings.Fields(sc.Text())
			rec := codec.Record{"layer_num": l + 1}
			for i, col := range soilLayerCols {
				if i < len(lt) {
					rec[col] = codec.DecodeToken(numF, lt[i])
				}
			}
			rows = append(rows, rec)
		}
		layers = append(layers, rows)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if err := ctx.Store.BulkUpsert("soils_sol", soilFields, soils); err != nil {
		return fmt.Errorf("store %s: %w", f.Name, err)
	}

	// Layers reference their soil by surrogate key, re-derived by name
	// after the soil rows exist.
	var flat []codec.Record
	for i, soil := range soils {
		name, _ := soil["name"].(string)
		id, found, err := ctx.Res.Lookup("soils_sol", name)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		for _, rec := range layers[i] {
			rec["soil_id"] = id
			flat = append(flat, rec)
		}
	}
	if err := ctx.Store.BulkUpsert("soils_sol_layer", soilLayerFields(), flat); err != nil {
		return fmt.Errorf("store soil layers: %w", err)
	}
	if err := ctx.Store.SetFileMeta(f.Name, meta); err != nil {
		return err
	}

	ctx.Log.Infow("imported file", "file", f.Name,
		"rows", len(soils), "layers", len(flat), "skipped", skipped)
	return nil
}

func exportSoils(ctx *Context, f *File) error {
	type soilRow struct {
		id      int64
		rec     codec.Record
		nlyRows []codec.Record
	}

	rows, err := ctx.Store.DB().Query(`SELECT id, name, hyd_grp, dp_tot,
		anion_excl, perc_crk, texture FROM soils_sol ORDER BY id`)
	if err != nil {
		return fmt.Errorf("select soils_sol: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var soils []soilRow
	for rows.Next() {
		holders := make([]any, len(soilFields)+1)
		var id int64
		holders[0] = &id
		for i, fld := range soilFields {
			holders[i+1] = scanHolder(fld.Kind)
		}
		if err := rows.Scan(holders...); err != nil {
			return err
		}
		rec := make(codec.Record, len(soilFields))
		for i, fld := range soilFields {
			rec[fld.Name] = holderValue(holders[i+1])
		}
		soils = append(soils, soilRow{id: id, rec: rec})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(soils) == 0 {
		return nil
	}

	layerQ := "SELECT " + strings.Join(soilLayerCols, ", ") +
		" FROM soils_sol_layer WHERE soil_id = ? ORDER BY layer_num"
	for i := range soils {
		lr, err := ctx.Store.DB().Query(layerQ, soils[i].id)
		if err != nil {
			return err
		}
		for lr.Next() {
			holders := make([]any, len(soilLayerCols))
			for j := range holders {
				holders[j] = scanHolder(codec.Float)
			}
			if err := lr.Scan(holders...); err != nil {
				_ = lr.Close()
				return err
			}
			rec := make(codec.Record, len(soilLayerCols))
			for j, col := range soilLayerCols {
				rec[col] = holderValue(holders[j])
			}
			soils[i].nlyRows = append(soils[i].nlyRows, rec)
		}
		if err := lr.Err(); err != nil {
			_ = lr.Close()
			return err
		}
		_ = lr.Close()
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

	var b strings.Builder
	b.WriteString(meta)
	b.WriteByte('\n')
	b.WriteString(codec.PadString("name"))
	b.WriteString(codec.PadIntText("nly"))
	b.WriteString(codec.PadCode("hyd_grp"))
	for _, col := range []string{"dp_tot", "anion_excl", "perc_crk"} {
		b.WriteString(codec.PadNumText(col))
	}
	b.WriteString(codec.PadString("texture"))
	for _, col := range soilLayerCols {
		b.WriteString(codec.PadNumText(col))
	}
	b.WriteByte('\n')

	numF := codec.Field{Kind: codec.Float}
	for _, soil := range soils {
		b.WriteString(codec.FormatValue(codec.Field{Kind: codec.String, Left: true}, soil.rec["name"]))
		b.WriteString(codec.PadInt(int64(len(soil.nlyRows))))
		b.WriteString(codec.FormatValue(codec.Field{Kind: codec.Code}, soil.rec["hyd_grp"]))
		b.WriteString(codec.FormatValue(numF, soil.rec["dp_tot"]))
		b.WriteString(codec.FormatValue(numF, soil.rec["anion_excl"]))
		b.WriteString(codec.FormatValue(numF, soil.rec["perc_crk"]))
		b.WriteString(codec.FormatValue(codec.Field{Kind: codec.String, Left: true}, soil.rec["texture"]))
		b.WriteByte('\n')
		for _, layer := range soil.nlyRows {
			for _, col := range soilLayerCols {
				b.WriteString(codec.FormatValue(numF, layer[col]))
			}
			b.WriteByte('\n')
		}
	}
	if _, err := w.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	ctx.Log.Infow("exported file", "file", f.Name, "rows", len(soils))
	return nil
}

// Nutrients zero in exp_co is a placeholder; the model needs a small
// positive value there.
var NutrientsSol = &File{
	Name: "nutrients.sol",
	Spec: codec.TableSpec{
		Table:   "nutrients_sol",
		MinCols: 9,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			[]codec.Field{{Name: "exp_co", Kind: codec.Float, Nullable: true, NonZeroMin: true}},
			nums("totaln", "totalp", "lab_p", "nitrate",
				"fr_hum_act", "hum_c_n", "hum_c_p"),
		),
	},
}

var SoilsLte = &File{
	Name: "soils_lte.sol",
	Spec: codec.TableSpec{
		Table:   "soils_lte_sol",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("awc", "por", "scon", "clay", "sand"),
		),
	},
}
