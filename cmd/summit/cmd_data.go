package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jwulff/summit/internal/db"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/snapshot"
	"github.com/jwulff/summit/internal/source"
)

var importAs string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List the available snapshot dates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dates, err := source.List(cfg.Data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range dates {
			if d == "" {
				d = "(undated)"
			}
			fmt.Fprintln(out, d)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Load a CSV export into the SQLite store",
	Long: `Imports a CSV export as one snapshot, replacing any snapshot with the
same date. The date comes from --as or from the file name
(data_cloud_summit_2024-06-04.csv imports as 2024-06-04).`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importAs, "as", "", "snapshot date to import as")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	date := importAs
	if date == "" {
		date = snapshot.DateFromPath(path)
	}
	if date == "" {
		return fmt.Errorf("cannot derive a snapshot date from %s; pass --as", filepath.Base(path))
	}

	t, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	storePath := cfg.Data.DB
	if storePath == "" {
		storePath = db.DefaultDBPath()
	}
	store, err := db.Create(storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(cmd.Context(), date, t)
	if err != nil {
		return err
	}
	logger.Named("import").Info().
		Str("snapshot", date).
		Str("db", storePath).
		Int("rows", n).
		Msg("imported")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows as %s into %s\n", n, date, storePath)
	return nil
}
