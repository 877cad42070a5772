package cmd

import (
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/basintools/basindb/internal/importer"
)

var exportDir string

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Output directory (default: the project directory)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [project_dir]",
	Short: "Re-encode the project database as model text files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, sync := newLogger()
		defer sync()

		ctx, cfg, err := openProject(args[0], log)
		if err != nil {
			return err
		}
		defer func() { _ = ctx.Store.Close() }()

		if exportDir != "" {
			ctx.FS = osfs.New(exportDir)
		}

		ex := &importer.Exporter{Ctx: ctx, Cfg: cfg}
		return ex.Run()
	},
}
