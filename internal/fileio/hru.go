package fileio

import "github.com/basintools/basindb/internal/codec"

// HRU data rows are almost entirely name references into the parameter
// tables imported earlier in the run.
var HruData = &File{
	Name: "hru-data.hru",
	Spec: codec.TableSpec{
		Table:   "hru_data",
		MinCols: 10,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("topo", "topography_hyd"),
			ref("hydro", "hydrology_hyd"),
			ref("soil", "soils_sol"),
			ref("lu_mgt", "landuse_lum"),
			ref("soil_plant_init", "soil_plant_ini"),
			ref("surf_stor", "wetland_wet"),
			ref("snow", "snow_sno"),
			ref("field", "field_fld"),
		},
	},
}

// The lite HRU format exists in the wild but has no import codec yet;
// recognizing it and refusing beats silently mis-parsing it. Export of
// database-resident rows works normally.
var HruLte = &File{
	Name: "hru-lte.hru",
	Spec: codec.TableSpec{
		Table:   "hru_lte_hru",
		MinCols: 7,
		HasID:   true,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("area", "cn2", "t_conc", "soil_dp", "slp"),
		),
	},
	ImportFn: func(ctx *Context, f *File) error {
		if _, ok, err := ctx.fileExists(f.Name); err != nil || !ok {
			return err
		}
		return ErrNotImplemented
	},
}
