package fileio

import (
	"github.com/basintools/basindb/internal/codec"
)

// Parameter database files. Most share the same shape: a unique name, a
// fixed run of numeric columns, and an optional trailing description.

var Plants = &File{
	Name: "plants.plt",
	Spec: codec.TableSpec{
		Table:   "plants_plt",
		MinCols: 18,
		Fields: fieldsOf(
			[]codec.Field{nameCol(), str("plnt_typ"), str("gro_trig")},
			nums("nfix_co", "days_mat", "bm_e", "harv_idx", "lai_pot",
				"frac_hu1", "lai_max1", "frac_hu2", "lai_max2",
				"hu_lai_decl", "dlai_rate", "can_ht_max", "rt_dp_max",
				"tmp_opt", "tmp_base"),
		),
		Trailing: desc,
	},
}

var Fertilizer = &File{
	Name: "fertilizer.frt",
	Spec: codec.TableSpec{
		Table:   "fertilizer_frt",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("min_n", "min_p", "org_n", "org_p", "salt_frt"),
		),
		Trailing: desc,
	},
}

var Tillage = &File{
	Name: "tillage.til",
	Spec: codec.TableSpec{
		Table:   "tillage_til",
		MinCols: 6,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("mix_eff", "mix_dp", "rough", "ridge_ht", "ridge_sp"),
		),
		Trailing: desc,
	},
}

var Pesticide = &File{
	Name: "pesticide.pst",
	Spec: codec.TableSpec{
		Table:   "pesticide_pst",
		MinCols: 10,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("soil_ads", "frac_wash", "hl_foliage", "hl_soil",
				"solub", "aq_hlife", "aq_volat", "mol_wt", "aq_resus"),
		),
		Trailing: desc,
	},
}

var Urban = &File{
	Name: "urban.urb",
	Spec: codec.TableSpec{
		Table:   "urban_urb",
		MinCols: 11,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("frac_imp", "frac_dc_imp", "curb_den", "urb_wash",
				"dirt_max", "t_half", "conc_totn", "conc_totp",
				"conc_no3n", "urb_cn"),
		),
		Trailing: desc,
	},
}

// Septic rows need all eleven fixed columns; a short row is unusable and
// is dropped rather than padded. Names fold to lower case on read.
var Septic = &File{
	Name: "septic.sep",
	Spec: codec.TableSpec{
		Table:   "septic_sep",
		MinCols: 11,
		Policy:  codec.SkipShort,
		Fields: fieldsOf(
			[]codec.Field{{Name: "name", Kind: codec.String, Left: true, Lower: true}},
			nums("q_rate", "bod", "tss", "nh4_n", "no3_n", "no2_n",
				"org_n", "min_p", "org_p", "fcoli"),
		),
		Trailing: desc,
	},
}

// Snow rows may legitimately omit the final column; a short row pads
// with zeros instead of being dropped.
var Snow = &File{
	Name: "snow.sno",
	Spec: codec.TableSpec{
		Table:   "snow_sno",
		MinCols: 9,
		Policy:  codec.PadShort,
		Fields: fieldsOf(
			[]codec.Field{{Name: "name", Kind: codec.String, Left: true, Lower: true}},
			nums("fall_tmp", "melt_tmp", "melt_max", "melt_min",
				"tmp_lag", "snow_h2o", "cov50", "snow_init"),
		),
	},
}

var Pathogens = &File{
	Name: "pathogens.pth",
	Spec: codec.TableSpec{
		Table:   "pathogens_pth",
		MinCols: 7,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			nums("die_soil", "gro_soil", "die_plnt", "gro_plnt",
				"die_water", "gro_water"),
		),
		Trailing: desc,
	},
}
