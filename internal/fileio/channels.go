package fileio

import "github.com/basintools/basindb/internal/codec"

var InitialCha = &File{
	Name: "initial.cha",
	Spec: codec.TableSpec{
		Table:   "initial_cha",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("org_min", "pest", "path", "hmet", "salt"),
		),
	},
}

var HydrologyCha = &File{
	Name: "hydrology.cha",
	Spec: codec.TableSpec{
		Table:   "hydrology_cha",
		MinCols: 17,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("wd", "dp", "slp", "len", "mann", "k",
				"erod_fact", "cov_fact", "wd_rto", "eq_slp", "d50",
				"clay", "carbon", "dry_bd", "side_slp", "bed_load"),
		),
	},
}

var SedimentCha = &File{
	Name: "sediment.cha",
	Spec: codec.TableSpec{
		Table:   "sediment_cha",
		MinCols: 5,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("cov1", "cov2", "bnk_erod", "bed_erod"),
		),
	},
}

var NutrientsCha = &File{
	Name: "nutrients.cha",
	Spec: codec.TableSpec{
		Table:   "nutrients_cha",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("plt_n", "ptl_p", "alg_stl", "ben_disp", "ben_nh3n"),
		),
	},
}

// Channel elements reference their parameter sets by name.
var ChannelCha = &File{
	Name: "channel.cha",
	Spec: codec.TableSpec{
		Table:   "channel_cha",
		MinCols: 6,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("init", "initial_cha"),
			ref("hyd", "hydrology_cha"),
			ref("sed", "sediment_cha"),
			ref("nut", "nutrients_cha"),
		},
	},
}

var ChannelLte = &File{
	Name: "channel-lte.cha",
	Spec: codec.TableSpec{
		Table:   "channel_lte_cha",
		MinCols: 6,
		HasID:   true,
		Fields: []codec.Field{
			nameCol(),
			ref("init", "initial_cha"),
			ref("hyd", "hydrology_cha"),
			ref("sed", "sediment_cha"),
			ref("nut", "nutrients_cha"),
		},
	},
}
