// Package importer orchestrates whole-project runs: every recognized
// input file decoded into the database in dependency order, or the whole
// database re-encoded as text.
package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/basintools/basindb/internal/config"
	"github.com/basintools/basindb/internal/connect"
	"github.com/basintools/basindb/internal/fileio"
	"github.com/basintools/basindb/internal/store"
)

// Group is a batch of files imported together. Order matters: groups
// later in the list resolve names against tables filled by earlier ones,
// and the connection files come last because their element ordinals
// enumerate tables every earlier group contributes to.
type Group struct {
	Name  string
	Files []*fileio.File
}

func Groups() []Group {
	return []Group{
		{"simulation", []*fileio.File{fileio.TimeSim}},
		{"climate", []*fileio.File{fileio.WeatherSta}},
		{"parm_db", []*fileio.File{
			fileio.Plants, fileio.Fertilizer, fileio.Tillage,
			fileio.Pesticide, fileio.Urban, fileio.Septic,
			fileio.Snow, fileio.Pathogens,
		}},
		{"soils", []*fileio.File{
			fileio.Soils, fileio.NutrientsSol, fileio.SoilsLte,
		}},
		{"hydrology", []*fileio.File{
			fileio.Hydrology, fileio.Topography, fileio.FieldFld,
		}},
		{"lum", []*fileio.File{fileio.Landuse, fileio.SoilPlantIni}},
		{"channels", []*fileio.File{
			fileio.InitialCha, fileio.HydrologyCha, fileio.SedimentCha,
			fileio.NutrientsCha, fileio.ChannelCha, fileio.ChannelLte,
		}},
		{"reservoirs", []*fileio.File{
			fileio.InitialRes, fileio.HydrologyRes, fileio.SedimentRes,
			fileio.NutrientsRes, fileio.ReservoirRes, fileio.Wetland,
		}},
		{"aquifers", []*fileio.File{fileio.InitialAqu, fileio.Aquifer}},
		{"routing", []*fileio.File{fileio.RoutUnitDr, fileio.RoutUnit}},
		{"hru", []*fileio.File{fileio.HruData, fileio.HruLte}},
		{"recall", []*fileio.File{
			fileio.Recall, fileio.Exco, fileio.Delratio,
		}},
	}
}

// Importer runs one full text-to-database pass.
type Importer struct {
	Ctx *fileio.Context
	Cfg *config.Config

	// Progress, when set, receives a percentage and a message as each
	// group completes.
	Progress func(percent int, msg string)
}

func (im *Importer) progress(pct int, msg string) {
	if im.Progress != nil {
		im.Progress(pct, msg)
	}
	im.Ctx.Log.Infow("progress", "percent", pct, "step", msg)
}

// Run imports the whole project. The database is cleared first: a
// re-import of the same directory converges to the same row set instead
// of accumulating.
func (im *Importer) Run() error {
	st := im.Ctx.Store
	if err := st.CreateSchema(); err != nil {
		return err
	}
	if err := st.ClearTables(store.ProjectTables()...); err != nil {
		return err
	}

	groups := Groups()
	steps := len(groups) + 1 // connection files are the final step
	done := 0

	for _, g := range groups {
		if im.Cfg.SkipsGroup(g.Name) {
			im.Ctx.Log.Infow("group skipped by config", "group", g.Name)
			done++
			continue
		}
		im.progress(done*100/steps, "importing "+g.Name)
		for _, f := range g.Files {
			if err := f.Import(im.Ctx); err != nil {
				if errors.Is(err, fileio.ErrNotImplemented) {
					im.Ctx.Log.Warnw("skipping unimplemented format",
						"file", f.Name)
					continue
				}
				return fmt.Errorf("import group %s: %w", g.Name, err)
			}
		}
		done++
	}

	if !im.Cfg.SkipsGroup("connect") {
		im.progress(done*100/steps, "importing connections")
		if err := im.importConnections(); err != nil {
			return err
		}
	}

	if err := im.stampProject(); err != nil {
		return err
	}
	im.progress(100, "import complete")
	return nil
}

// importConnections stages the node pass for every connection file
// before resolving any edges: an edge in hru.con may target a channel.con
// node, so no file's ordinals are translatable until every file's nodes
// are in.
func (im *Importer) importConnections() error {
	var staged []*connect.FileData
	for _, spec := range connect.All {
		r, ok, err := im.Ctx.OpenInput(spec.FileName)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		d, err := connect.ReadNodes(im.Ctx.Store, im.Ctx.Res, r, spec)
		_ = r.Close()
		if err != nil {
			return err
		}
		staged = append(staged, d)
	}

	ordIdx := store.NewOrdinalIndex(im.Ctx.Store)
	for _, d := range staged {
		if err := d.ResolveEdges(im.Ctx.Store, im.Ctx.Res, ordIdx, im.Ctx.Log); err != nil {
			return err
		}
		if err := im.Ctx.Store.SetFileMeta(d.Spec.FileName, d.Stats.Meta); err != nil {
			return err
		}
		im.Ctx.Log.Infow("imported connection file",
			"file", d.Spec.FileName, "nodes", d.Stats.Nodes, "edges", d.Stats.Edges,
			"skipped", d.Stats.Skipped, "unresolved", d.Stats.Unresolved)
	}
	return nil
}

// stampProject records the tool and model versions of the run.
func (im *Importer) stampProject() error {
	_, err := im.Ctx.Store.DB().Exec(
		`INSERT OR REPLACE INTO project_config
		 (id, editor_version, model_version, imported_at)
		 VALUES (1, ?, ?, ?)`,
		im.Cfg.Project.EditorVersion, im.Cfg.Project.ModelVersion,
		time.Now().Format(time.RFC3339))
	return err
}

// Exporter runs one full database-to-text pass.
type Exporter struct {
	Ctx *fileio.Context
	Cfg *config.Config

	Progress func(percent int, msg string)
}

func (ex *Exporter) progress(pct int, msg string) {
	if ex.Progress != nil {
		ex.Progress(pct, msg)
	}
	ex.Ctx.Log.Infow("progress", "percent", pct, "step", msg)
}

// Run writes every non-empty table back out as text, connection files
// included.
func (ex *Exporter) Run() error {
	groups := Groups()
	steps := len(groups) + 1
	done := 0

	for _, g := range groups {
		ex.progress(done*100/steps, "exporting "+g.Name)
		for _, f := range g.Files {
			if err := f.Export(ex.Ctx); err != nil {
				if errors.Is(err, fileio.ErrNotImplemented) {
					continue
				}
				return fmt.Errorf("export group %s: %w", g.Name, err)
			}
		}
		done++
	}

	ex.progress(done*100/steps, "exporting connections")
	if err := ex.exportConnections(); err != nil {
		return err
	}
	ex.progress(100, "export complete")
	return nil
}

func (ex *Exporter) exportConnections() error {
	for _, spec := range connect.All {
		ok, err := connect.HasRows(ex.Ctx.Store, spec)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		meta, err := ex.Ctx.MetaLine(spec.FileName)
		if err != nil {
			return err
		}
		w, err := ex.Ctx.CreateOutput(spec.FileName)
		if err != nil {
			return err
		}
		if err := connect.WriteFile(ex.Ctx.Store, w, meta, spec); err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		ex.Ctx.Log.Infow("exported connection file", "file", spec.FileName)
	}
	return nil
}
