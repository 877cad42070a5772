package fileio

import "github.com/basintools/basindb/internal/codec"

// Land use management rows point at a dozen practice tables by name.
// The pointers are stored as text: the practice tables themselves live
// outside the imported set, so there is nothing to resolve against.
var Landuse = &File{
	Name: "landuse.lum",
	Spec: codec.TableSpec{
		Table:   "landuse_lum",
		MinCols: 14,
		Fields: []codec.Field{
			nameCol(), str("cal_group"), str("plnt_com"), str("mgt"),
			str("cn2"), str("cons_prac"), str("urban"), str("urb_ro"),
			str("ov_mann"), str("tile"), str("sep"), str("vfs"),
			str("grww"), str("bmp"),
		},
	},
}

var SoilPlantIni = &File{
	Name: "soil_plant.ini",
	Spec: codec.TableSpec{
		Table:   "soil_plant_ini",
		MinCols: 7,
		Fields: []codec.Field{
			nameCol(), num("sw_frac"), str("nutc"), str("pestc"),
			str("pathc"), str("saltc"), str("hmetc"),
		},
	},
}
