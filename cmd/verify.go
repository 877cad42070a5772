package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/basintools/basindb/internal/report"
	"github.com/basintools/basindb/internal/store"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [database]",
	Short: "Report row counts and connection graph health as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.CreateSchema(); err != nil {
			return err
		}

		rep, err := report.Verify(st)
		if err != nil {
			return err
		}
		return rep.WriteJSON(os.Stdout)
	},
}
