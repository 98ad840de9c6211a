// Command summit browses a conference session catalog in the terminal and
// serves it over MCP and HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwulff/summit/internal/app"
	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/config"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/source"
)

var version = "dev"

var (
	// Global flags
	configPath   string
	dataDir      string
	snapshotDate string
	dbPath       string
	langFlag     string
	verbose      bool

	cfg     config.Config
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "summit",
	Short: "Data Cloud Summit session finder",
	Long: `summit filters a conference session export by track, date, start hour,
session type and free text, with Japanese and English labels.

Run without arguments to start the interactive viewer.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
	RunE: runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/summit/config.yaml)")
	pf.StringVar(&dataDir, "data-dir", "", "directory holding the CSV exports")
	pf.StringVar(&snapshotDate, "snapshot", "", "snapshot date (default latest)")
	pf.StringVar(&dbPath, "db", "", "read snapshots from this SQLite store")
	pf.StringVar(&langFlag, "lang", "", "display language: ja or en")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.Version = version
	rootCmd.AddCommand(searchCmd, snapshotsCmd, importCmd, mcpCmd, serveCmd)
}

// setup loads configuration, applies flags and starts logging. The viewer
// owns the terminal and the MCP server owns stdout, so neither logs there.
func setup(cmd *cobra.Command, args []string) error {
	logFile = nil
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opt := logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Component: "summit"}
	if !cmd.HasParent() {
		path := cfg.Log.File
		if path == "" {
			path = logger.DefaultFile()
		}
		f, err := logger.OpenFile(path)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		logFile = f
		opt.Writer = f
	} else if cfg.Log.File != "" {
		f, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		logFile = f
		opt.Writer = f
	}
	logger.Init(opt)
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		c.Data.Dir = dataDir
	}
	if flags.Changed("snapshot") {
		c.Data.Snapshot = snapshotDate
	}
	if flags.Changed("db") {
		c.Data.DB = dbPath
	}
	if flags.Changed("lang") {
		c.UI.Language = langFlag
	}
	if verbose {
		c.Log.Level = "debug"
	}
}

// language returns the configured display language. Validate has already
// restricted it to ja or en.
func language() catalog.Language {
	lang, err := catalog.ParseLanguage(cfg.UI.Language)
	if err != nil {
		return catalog.Japanese
	}
	return lang
}

func runTUI(cmd *cobra.Command, args []string) error {
	data := cfg.Data
	m := app.New(func() (*source.Loaded, error) {
		return source.Open(data)
	}, app.Options{
		Language:   language(),
		SearchDate: cfg.Search.IncludeDate,
	})
	return app.Run(m)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
