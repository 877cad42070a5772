package fileio

import "github.com/basintools/basindb/internal/codec"

var InitialRes = &File{
	Name: "initial.res",
	Spec: codec.TableSpec{
		Table:   "initial_res",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("org_min", "pest", "path", "hmet", "salt"),
		),
	},
}

var HydrologyRes = &File{
	Name: "hydrology.res",
	Spec: codec.TableSpec{
		Table:   "hydrology_res",
		MinCols: 11,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("yr_op", "mon_op", "area_ps", "vol_ps", "area_es",
				"vol_es", "k", "evap_co", "shp_co1", "shp_co2"),
		),
	},
}

var SedimentRes = &File{
	Name: "sediment.res",
	Spec: codec.TableSpec{
		Table:   "sediment_res",
		MinCols: 7,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("sed_amt", "d50", "carbon", "bd", "sed_stlr", "velsetlr"),
		),
	},
}

var NutrientsRes = &File{
	Name: "nutrients.res",
	Spec: codec.TableSpec{
		Table:   "nutrients_res",
		MinCols: 13,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("mid_start", "mid_end", "mid_n_stl", "n_stl",
				"mid_p_stl", "p_stl", "chla_co", "secchi_co",
				"theta_n", "theta_p", "n_min_stl", "p_min_stl"),
		),
	},
}

var ReservoirRes = &File{
	Name: "reservoir.res",
	Spec: codec.TableSpec{
		Table:   "reservoir_res",
		MinCols: 7,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("init", "initial_res"),
			ref("hyd", "hydrology_res"),
			str("rel"),
			ref("sed", "sediment_res"),
			ref("nut", "nutrients_res"),
		},
	},
}

// Wetlands share the reservoir parameter tables.
var Wetland = &File{
	Name: "wetland.wet",
	Spec: codec.TableSpec{
		Table:   "wetland_wet",
		MinCols: 7,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("init", "initial_res"),
			ref("hyd", "hydrology_res"),
			str("rel"),
			ref("sed", "sediment_res"),
			ref("nut", "nutrients_res"),
		},
	},
}
