package fileio

import "github.com/basintools/basindb/internal/codec"

var Hydrology = &File{
	Name: "hydrology.hyd",
	Spec: codec.TableSpec{
		Table:   "hydrology_hyd",
		MinCols: 15,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("lat_ttime", "lat_sed", "can_max", "esco", "epco",
				"orgn_enrich", "orgp_enrich", "cn3_swf", "bio_mix",
				"perco", "lat_orgn", "lat_orgp", "pet_co", "latq_co"),
		),
	},
}

// Topography rows carry no kind column in the file; imported rows are
// HRU topography, and routing-unit rows (kind 'sub') only ever enter the
// table through the database. The export order keeps the HRU block
// first, matching the imported layout.
var Topography = &File{
	Name: "topography.hyd",
	Spec: codec.TableSpec{
		Table:   "topography_hyd",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("slp", "slp_len", "lat_len", "dist_cha", "depos"),
		),
	},
	OnRecord: func(rec codec.Record) { rec["kind"] = "hru" },
	Store: fieldsOf(
		[]codec.Field{nameCol()},
		nums("slp", "slp_len", "lat_len", "dist_cha", "depos"),
		[]codec.Field{{Name: "kind", Kind: codec.Code}},
	),
	OrderBy: "t.kind, t.id",
}

var FieldFld = &File{
	Name: "field.fld",
	Spec: codec.TableSpec{
		Table:   "field_fld",
		MinCols: 4,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("len", "wd", "ang"),
		),
	},
}
