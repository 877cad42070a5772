package fileio

import "github.com/basintools/basindb/internal/codec"

var RoutUnitDr = &File{
	Name: "rout_unit.dr",
	Spec: codec.TableSpec{
		Table:   "rout_unit_dr",
		MinCols: 10,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("temp", "flo", "sed", "orgn", "sedp", "no3",
				"solp", "pest_sol", "pest_sorb"),
		),
	},
}

var RoutUnit = &File{
	Name: "rout_unit.rtu",
	Spec: codec.TableSpec{
		Table:   "rout_unit_rtu",
		MinCols: 5,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("dlr", "rout_unit_dr"),
			ref("topo", "topography_hyd"),
			ref("field", "field_fld"),
		},
	},
}
