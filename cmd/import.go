package cmd

import (
	"github.com/spf13/cobra"

	"github.com/basintools/basindb/internal/importer"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [project_dir]",
	Short: "Decode a directory of model text files into the project database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, sync := newLogger()
		defer sync()

		ctx, cfg, err := openProject(args[0], log)
		if err != nil {
			return err
		}
		defer func() { _ = ctx.Store.Close() }()

		im := &importer.Importer{Ctx: ctx, Cfg: cfg}
		return im.Run()
	},
}
