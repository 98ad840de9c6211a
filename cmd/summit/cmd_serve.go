package main

import (
	"github.com/spf13/cobra"

	"github.com/jwulff/summit/internal/httpapi"
	"github.com/jwulff/summit/internal/mcpserver"
	"github.com/jwulff/summit/internal/source"
)

var serveAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the catalog as MCP tools on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := source.Open(cfg.Data)
		if err != nil {
			return err
		}
		s := mcpserver.New(src, mcpserver.Options{
			Version:    version,
			Language:   language(),
			SearchDate: cfg.Search.IncludeDate,
		})
		return s.ServeStdio()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as a JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr = serveAddr
		}
		src, err := source.Open(cfg.Data)
		if err != nil {
			return err
		}
		s := httpapi.New(src, httpapi.Options{
			Addr:        cfg.HTTP.Addr,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Language:    language(),
			SearchDate:  cfg.Search.IncludeDate,
		})

		ctx, stop := signalContext()
		defer stop()
		return s.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}
