package fileio

import "github.com/basintools/basindb/internal/codec"

// TimeSim is the single-row simulation period file.
var TimeSim = &File{
	Name: "time.sim",
	Spec: codec.TableSpec{
		Table:   "time_sim",
		MinCols: 5,
		Fields: []codec.Field{
			intf("day_start"), intf("yrc_start"),
			intf("day_end"), intf("yrc_end"), intf("step"),
		},
	},
}

// WeatherSta is the weather station file referenced by connection nodes.
var WeatherSta = &File{
	Name: "weather-sta.cli",
	Spec: codec.TableSpec{
		Table:   "weather_sta_cli",
		MinCols: 9,
		Fields: fieldsOf(
			[]codec.Field{nameCol()},
			[]codec.Field{
				str("wgn"), str("pcp"), str("tmp"),
				str("slr"), str("hmd"), str("wnd"),
			},
			nums("lat", "lon"),
		),
	},
}
