package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/basintools/basindb/internal/config"
	"github.com/basintools/basindb/internal/fileio"
	"github.com/basintools/basindb/internal/store"
)

var (
	dbPath  string
	cfgPath string
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the project database (default <project_dir>/project.db)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the project config file (default <project_dir>/basindb.hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

var rootCmd = &cobra.Command{
	Use:     "basindb",
	Short:   "Import and export watershed model text files against a SQLite project database",
	Version: "1.0.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, func()) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}
	return log.Sugar(), func() { _ = log.Sync() }
}

// projectPaths fills in the default database and config locations for a
// project directory.
func projectPaths(dir string) (db, cfg string) {
	db = dbPath
	if db == "" {
		db = filepath.Join(dir, "project.db")
	}
	cfg = cfgPath
	if cfg == "" {
		cfg = filepath.Join(dir, "basindb.hcl")
	}
	return db, cfg
}

// openProject builds the shared run context for a project directory.
func openProject(dir string, log *zap.SugaredLogger) (*fileio.Context, *config.Config, error) {
	db, cfgFile := projectPaths(dir)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(db)
	if err != nil {
		return nil, nil, err
	}
	if err := st.CreateSchema(); err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	ctx := &fileio.Context{
		Store:   st,
		Res:     store.NewResolver(st),
		FS:      osfs.New(dir),
		Log:     log,
		Version: cfg.Project.EditorVersion,
	}
	return ctx, cfg, nil
}
