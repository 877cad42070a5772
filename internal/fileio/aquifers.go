package fileio

import "github.com/basintools/basindb/internal/codec"

var InitialAqu = &File{
	Name: "initial.aqu",
	Spec: codec.TableSpec{
		Table:   "initial_aqu",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("org_min", "pest", "path", "hmet", "salt"),
		),
	},
}

var Aquifer = &File{
	Name: "aquifer.aqu",
	Spec: codec.TableSpec{
		Table:   "aquifer_aqu",
		MinCols: 18,
		HasID:   true,
		Fields: fieldsOf(
			[]codec.Field{nameCol(), ref("init", "initial_aqu")},
			nums("gw_flo", "dep_bot", "dep_wt", "no3_n", "sol_p",
				"carbon", "flo_dist", "bf_max", "alpha_bf", "revap",
				"rchg_dp", "spec_yld", "hl_no3n", "flo_min", "revap_min"),
		),
	},
}
