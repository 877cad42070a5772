package connect

// Specs for every connection file format. The recall and export
// coefficient formats draw on the same underlying tables, partitioned by
// the rec_typ discriminator; export coefficient sources additionally
// require a non-zero flow somewhere in their time series.
var (
	HruCon = Spec{
		FileName: "hru.con",
		ConTable: "hru_con", OutTable: "hru_con_out", OutFK: "hru_con_id",
		ElemName: "hru", ElemTable: "hru_data", ElemFK: "hru_id",
	}

	HruLteCon = Spec{
		FileName: "hru-lte.con",
		ConTable: "hru_lte_con", OutTable: "hru_lte_con_out", OutFK: "hru_lte_con_id",
		ElemName: "lhru", ElemTable: "hru_lte_hru", ElemFK: "lhru_id",
	}

	RoutUnitCon = Spec{
		FileName: "rout_unit.con",
		ConTable: "rout_unit_con", OutTable: "rout_unit_con_out", OutFK: "rout_unit_con_id",
		ElemName: "rtu", ElemTable: "rout_unit_rtu", ElemFK: "rtu_id",
	}

	AquiferCon = Spec{
		FileName: "aquifer.con",
		ConTable: "aquifer_con", OutTable: "aquifer_con_out", OutFK: "aquifer_con_id",
		ElemName: "aqu", ElemTable: "aquifer_aqu", ElemFK: "aqu_id",
	}

	ChannelCon = Spec{
		FileName: "channel.con",
		ConTable: "channel_con", OutTable: "channel_con_out", OutFK: "channel_con_id",
		ElemName: "cha", ElemTable: "channel_cha", ElemFK: "cha_id",
	}

	ChandegCon = Spec{
		FileName: "chandeg.con",
		ConTable: "chandeg_con", OutTable: "chandeg_con_out", OutFK: "chandeg_con_id",
		ElemName: "lcha", ElemTable: "channel_lte_cha", ElemFK: "lcha_id",
	}

	ReservoirCon = Spec{
		FileName: "reservoir.con",
		ConTable: "reservoir_con", OutTable: "reservoir_con_out", OutFK: "reservoir_con_id",
		ElemName: "res", ElemTable: "reservoir_res", ElemFK: "res_id",
	}

	RecallCon = Spec{
		FileName: "recall.con",
		ConTable: "recall_con", OutTable: "recall_con_out", OutFK: "recall_con_id",
		ElemName: "rec", ElemTable: "recall_rec", ElemFK: "rec_id",
		ElemWhere: "rec_typ != 4",
	}

	ExcoCon = Spec{
		FileName: "exco.con",
		ConTable: "recall_con", OutTable: "recall_con_out", OutFK: "recall_con_id",
		ElemName: "exco", ElemTable: "recall_rec", ElemFK: "rec_id",
		ElemWhere: "rec_typ = 4 AND id IN (SELECT recall_rec_id FROM recall_dat WHERE flo != 0)",
	}

	DelratioCon = Spec{
		FileName: "delratio.con",
		ConTable: "delratio_con", OutTable: "delratio_con_out", OutFK: "delratio_con_id",
		ElemName: "dlr", ElemTable: "delratio_del", ElemFK: "dlr_id",
	}

	// Outlets have no backing element table; the elem column is the
	// node's own position.
	OutletCon = Spec{
		FileName: "outlet.con",
		ConTable: "outlet_con", OutTable: "outlet_con_out", OutFK: "outlet_con_id",
		ElemName: "out",
	}
)

// All lists the connection specs in import order.
var All = []Spec{
	HruCon, HruLteCon, RoutUnitCon, AquiferCon, ChannelCon, ChandegCon,
	ReservoirCon, RecallCon, ExcoCon, DelratioCon, OutletCon,
}
