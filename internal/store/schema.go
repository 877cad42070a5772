package store

import "fmt"

// paramTable builds the CREATE TABLE statement for a simple parameter
// table: surrogate key, unique name, then the given column definitions.
func paramTable(name string, cols string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE%s
);
`, name, cols)
}

// conTable builds the node table for one connectable object class.
// elemFK is the class's element reference column ("" for outlets, which
// have no backing element table).
func conTable(name, elemFK string) string {
	elem := ""
	if elemFK != "" {
		elem = ",\n\t" + elemFK + " INTEGER"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	gis_id INTEGER,
	area REAL NOT NULL DEFAULT 0,
	lat REAL,
	lon REAL,
	elev REAL,
	wst_id INTEGER,
	cst_id INTEGER,
	ovfl INTEGER NOT NULL DEFAULT 0,
	rule INTEGER NOT NULL DEFAULT 0%s
);
`, name, elem)
}

// conOutTable builds the edge table owned by a node table. Edges carry a
// contiguous 1-based ord per owner, the target type tag, the target's
// surrogate key (null when unresolved), the hydrologic output type and
// the fractional split.
func conOutTable(name, fk, owner string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY,
	%s INTEGER NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
	ord INTEGER NOT NULL,
	obj_typ TEXT NOT NULL,
	obj_id INTEGER,
	hyd_typ TEXT NOT NULL,
	frac REAL NOT NULL DEFAULT 0,
	UNIQUE (%s, ord)
);
`, name, fk, owner, fk)
}

// CreateSchema creates every project table idempotently.
func (s *Store) CreateSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS project_config (
	id INTEGER PRIMARY KEY,
	editor_version TEXT,
	model_version TEXT,
	imported_at TEXT
);
`,
		`CREATE TABLE IF NOT EXISTS file_meta (
	file_name TEXT PRIMARY KEY,
	meta_line TEXT NOT NULL
);
`,
		`CREATE TABLE IF NOT EXISTS time_sim (
	id INTEGER PRIMARY KEY,
	day_start INTEGER NOT NULL DEFAULT 0,
	yrc_start INTEGER NOT NULL DEFAULT 0,
	day_end INTEGER NOT NULL DEFAULT 0,
	yrc_end INTEGER NOT NULL DEFAULT 0,
	step INTEGER NOT NULL DEFAULT 0
);
`,

		// climate
		paramTable("weather_sta_cli", `,
	wgn TEXT, pcp TEXT, tmp TEXT, slr TEXT, hmd TEXT, wnd TEXT,
	lat REAL, lon REAL`),

		// parameter database
		paramTable("plants_plt", `,
	plnt_typ TEXT, gro_trig TEXT,
	nfix_co REAL, days_mat REAL, bm_e REAL, harv_idx REAL, lai_pot REAL,
	frac_hu1 REAL, lai_max1 REAL, frac_hu2 REAL, lai_max2 REAL,
	hu_lai_decl REAL, dlai_rate REAL, can_ht_max REAL, rt_dp_max REAL,
	tmp_opt REAL, tmp_base REAL,
	description TEXT`),
		paramTable("fertilizer_frt", `,
	min_n REAL, min_p REAL, org_n REAL, org_p REAL, salt_frt REAL,
	description TEXT`),
		paramTable("tillage_til", `,
	mix_eff REAL, mix_dp REAL, rough REAL, ridge_ht REAL, ridge_sp REAL,
	description TEXT`),
		paramTable("pesticide_pst", `,
	soil_ads REAL, frac_wash REAL, hl_foliage REAL, hl_soil REAL,
	solub REAL, aq_hlife REAL, aq_volat REAL, mol_wt REAL, aq_resus REAL,
	description TEXT`),
		paramTable("urban_urb", `,
	frac_imp REAL, frac_dc_imp REAL, curb_den REAL, urb_wash REAL,
	dirt_max REAL, t_half REAL, conc_totn REAL, conc_totp REAL,
	conc_no3n REAL, urb_cn REAL,
	description TEXT`),
		paramTable("septic_sep", `,
	q_rate REAL, bod REAL, tss REAL, nh4_n REAL, no3_n REAL, no2_n REAL,
	org_n REAL, min_p REAL, org_p REAL, fcoli REAL,
	description TEXT`),
		paramTable("snow_sno", `,
	fall_tmp REAL, melt_tmp REAL, melt_max REAL, melt_min REAL,
	tmp_lag REAL, snow_h2o REAL, cov50 REAL, snow_init REAL`),
		paramTable("pathogens_pth", `,
	die_soil REAL, gro_soil REAL, die_plnt REAL, gro_plnt REAL,
	die_water REAL, gro_water REAL,
	description TEXT`),

		// soils
		paramTable("soils_sol", `,
	hyd_grp TEXT, dp_tot REAL, anion_excl REAL, perc_crk REAL,
	texture TEXT`),
		`CREATE TABLE IF NOT EXISTS soils_sol_layer (
	id INTEGER PRIMARY KEY,
	soil_id INTEGER NOT NULL REFERENCES soils_sol(id) ON DELETE CASCADE,
	layer_num INTEGER NOT NULL,
	dp REAL, bd REAL, awc REAL, soil_k REAL, carbon REAL,
	clay REAL, silt REAL, sand REAL, rock REAL, alb REAL,
	usle_k REAL, ec REAL, caco3 REAL, ph REAL,
	UNIQUE (soil_id, layer_num)
);
`,
		paramTable("nutrients_sol", `,
	exp_co REAL, totaln REAL, totalp REAL, lab_p REAL, nitrate REAL,
	fr_hum_act REAL, hum_c_n REAL, hum_c_p REAL`),
		paramTable("soils_lte_sol", `,
	awc REAL, por REAL, scon REAL, clay REAL, sand REAL`),

		// hydrology
		paramTable("hydrology_hyd", `,
	lat_ttime REAL, lat_sed REAL, can_max REAL, esco REAL, epco REAL,
	orgn_enrich REAL, orgp_enrich REAL, cn3_swf REAL, bio_mix REAL,
	perco REAL, lat_orgn REAL, lat_orgp REAL, pet_co REAL, latq_co REAL`),
		paramTable("topography_hyd", `,
	slp REAL, slp_len REAL, lat_len REAL, dist_cha REAL, depos REAL,
	kind TEXT NOT NULL DEFAULT 'hru'`),
		paramTable("field_fld", `,
	len REAL, wd REAL, ang REAL`),

		// land use and initial conditions
		paramTable("landuse_lum", `,
	cal_group TEXT, plnt_com TEXT, mgt TEXT, cn2 TEXT, cons_prac TEXT,
	urban TEXT, urb_ro TEXT, ov_mann TEXT, tile TEXT, sep TEXT,
	vfs TEXT, grww TEXT, bmp TEXT`),
		paramTable("soil_plant_ini", `,
	sw_frac REAL, nutc TEXT, pestc TEXT, pathc TEXT, saltc TEXT,
	hmetc TEXT`),

		// channel parameter tables and elements
		paramTable("initial_cha", `,
	org_min REAL, pest REAL, path REAL, hmet REAL, salt REAL`),
		paramTable("hydrology_cha", `,
	wd REAL, dp REAL, slp REAL, len REAL, mann REAL, k REAL,
	erod_fact REAL, cov_fact REAL, wd_rto REAL, eq_slp REAL, d50 REAL,
	clay REAL, carbon REAL, dry_bd REAL, side_slp REAL, bed_load REAL`),
		paramTable("sediment_cha", `,
	cov1 REAL, cov2 REAL, bnk_erod REAL, bed_erod REAL`),
		paramTable("nutrients_cha", `,
	plt_n REAL, ptl_p REAL, alg_stl REAL, ben_disp REAL, ben_nh3n REAL`),
		paramTable("channel_cha", `,
	init_id INTEGER, hyd_id INTEGER, sed_id INTEGER, nut_id INTEGER`),
		paramTable("channel_lte_cha", `,
	init_id INTEGER, hyd_id INTEGER, sed_id INTEGER, nut_id INTEGER`),

		// reservoir parameter tables and elements
		paramTable("initial_res", `,
	org_min REAL, pest REAL, path REAL, hmet REAL, salt REAL`),
		paramTable("hydrology_res", `,
	yr_op REAL, mon_op REAL, area_ps REAL, vol_ps REAL, area_es REAL,
	vol_es REAL, k REAL, evap_co REAL, shp_co1 REAL, shp_co2 REAL`),
		paramTable("sediment_res", `,
	sed_amt REAL, d50 REAL, carbon REAL, bd REAL, sed_stlr REAL,
	velsetlr REAL`),
		paramTable("nutrients_res", `,
	mid_start REAL, mid_end REAL, mid_n_stl REAL, n_stl REAL,
	mid_p_stl REAL, p_stl REAL, chla_co REAL, secchi_co REAL,
	theta_n REAL, theta_p REAL, n_min_stl REAL, p_min_stl REAL`),
		paramTable("reservoir_res", `,
	init_id INTEGER, hyd_id INTEGER, rel TEXT, sed_id INTEGER,
	nut_id INTEGER`),
		paramTable("wetland_wet", `,
	init_id INTEGER, hyd_id INTEGER, rel TEXT, sed_id INTEGER,
	nut_id INTEGER`),

		// aquifer
		paramTable("initial_aqu", `,
	org_min REAL, pest REAL, path REAL, hmet REAL, salt REAL`),
		paramTable("aquifer_aqu", `,
	init_id INTEGER, gw_flo REAL, dep_bot REAL, dep_wt REAL, no3_n REAL,
	sol_p REAL, carbon REAL, flo_dist REAL, bf_max REAL, alpha_bf REAL,
	revap REAL, rchg_dp REAL, spec_yld REAL, hl_no3n REAL, flo_min REAL,
	revap_min REAL`),

		// HRU and routing-unit elements
		paramTable("hru_data", `,
	topo_id INTEGER, hydro_id INTEGER, soil_id INTEGER, lu_mgt_id INTEGER,
	soil_plant_init_id INTEGER, surf_stor_id INTEGER, snow_id INTEGER,
	field_id INTEGER`),
		paramTable("hru_lte_hru", `,
	area REAL, cn2 REAL, t_conc REAL, soil_dp REAL, slp REAL`),
		paramTable("rout_unit_dr", `,
	temp REAL, flo REAL, sed REAL, orgn REAL, sedp REAL, no3 REAL,
	solp REAL, pest_sol REAL, pest_sorb REAL`),
		paramTable("rout_unit_rtu", `,
	dlr_id INTEGER, topo_id INTEGER, field_id INTEGER`),

		// recall, export coefficients, delivery ratios
		paramTable("recall_rec", `,
	rec_typ INTEGER NOT NULL DEFAULT 0,
	file TEXT`),
		`CREATE TABLE IF NOT EXISTS recall_dat (
	id INTEGER PRIMARY KEY,
	recall_rec_id INTEGER NOT NULL REFERENCES recall_rec(id) ON DELETE CASCADE,
	yr INTEGER NOT NULL DEFAULT 0,
	jday INTEGER NOT NULL DEFAULT 0,
	flo REAL NOT NULL DEFAULT 0,
	sed REAL NOT NULL DEFAULT 0,
	orgn REAL NOT NULL DEFAULT 0,
	UNIQUE (recall_rec_id, yr, jday)
);
`,
		paramTable("exco_exc", `,
	flo REAL, sed REAL, orgn REAL, sedp REAL, no3 REAL, solp REAL`),
		paramTable("delratio_del", `,
	flo REAL, sed REAL, orgn REAL, sedp REAL, no3 REAL, solp REAL`),

		// connection node tables, one per connectable class
		conTable("hru_con", "hru_id"),
		conTable("hru_lte_con", "lhru_id"),
		conTable("rout_unit_con", "rtu_id"),
		conTable("aquifer_con", "aqu_id"),
		conTable("channel_con", "cha_id"),
		conTable("chandeg_con", "lcha_id"),
		conTable("reservoir_con", "res_id"),
		conTable("recall_con", "rec_id"),
		conTable("delratio_con", "dlr_id"),
		conTable("outlet_con", ""),

		// edge tables
		conOutTable("hru_con_out", "hru_con_id", "hru_con"),
		conOutTable("hru_lte_con_out", "hru_lte_con_id", "hru_lte_con"),
		conOutTable("rout_unit_con_out", "rout_unit_con_id", "rout_unit_con"),
		conOutTable("aquifer_con_out", "aquifer_con_id", "aquifer_con"),
		conOutTable("channel_con_out", "channel_con_id", "channel_con"),
		conOutTable("chandeg_con_out", "chandeg_con_id", "chandeg_con"),
		conOutTable("reservoir_con_out", "reservoir_con_id", "reservoir_con"),
		conOutTable("recall_con_out", "recall_con_id", "recall_con"),
		conOutTable("delratio_con_out", "delratio_con_id", "delratio_con"),
		conOutTable("outlet_con_out", "outlet_con_id", "outlet_con"),
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// ProjectTables lists every table cleared before a re-import, children
// before owners so FK cascades never fire mid-clear.
func ProjectTables() []string {
	return []string{
		"hru_con_out", "hru_lte_con_out", "rout_unit_con_out",
		"aquifer_con_out", "channel_con_out", "chandeg_con_out",
		"reservoir_con_out", "recall_con_out", "delratio_con_out",
		"outlet_con_out",
		"hru_con", "hru_lte_con", "rout_unit_con", "aquifer_con",
		"channel_con", "chandeg_con", "reservoir_con", "recall_con",
		"delratio_con", "outlet_con",
		"recall_dat", "recall_rec", "exco_exc", "delratio_del",
		"hru_data", "hru_lte_hru", "rout_unit_rtu", "rout_unit_dr",
		"aquifer_aqu", "initial_aqu",
		"reservoir_res", "wetland_wet",
		"initial_res", "hydrology_res", "sediment_res", "nutrients_res",
		"channel_cha", "channel_lte_cha",
		"initial_cha", "hydrology_cha", "sediment_cha", "nutrients_cha",
		"landuse_lum", "soil_plant_ini",
		"hydrology_hyd", "topography_hyd", "field_fld",
		"soils_sol_layer", "soils_sol", "nutrients_sol", "soils_lte_sol",
		"plants_plt", "fertilizer_frt", "tillage_til", "pesticide_pst",
		"urban_urb", "septic_sep", "snow_sno", "pathogens_pth",
		"weather_sta_cli", "time_sim", "file_meta",
	}
}
