// Package mcpserver exposes the session catalog as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/source"
)

const defaultLimit = 50

// Options configures the tool defaults.
type Options struct {
	Version    string
	Language   catalog.Language
	SearchDate bool
}

// Server answers catalog tool calls for one loaded snapshot.
type Server struct {
	src *source.Loaded
	opt Options
	mcp *server.MCPServer
}

// New registers the search_sessions and list_facets tools.
func New(src *source.Loaded, opt Options) *Server {
	if opt.Version == "" {
		opt.Version = "dev"
	}
	if opt.Language != catalog.English {
		opt.Language = catalog.Japanese
	}
	s := &Server{
		src: src,
		opt: opt,
		mcp: server.NewMCPServer("summit", opt.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}

	s.mcp.AddTool(mcp.NewTool("search_sessions",
		mcp.WithDescription("Search conference sessions. Selectors match exactly, query matches code, title, type, track and description case-insensitively."),
		mcp.WithString("query", mcp.Description("Substring to search for")),
		mcp.WithString("track", mcp.Description("Exact track, as listed by list_facets")),
		mcp.WithString("date", mcp.Description("Exact date, e.g. 2025-06-03")),
		mcp.WithString("hour", mcp.Description("Start hour bucket, e.g. 09時")),
		mcp.WithString("type", mcp.Description("Exact session type, e.g. Breakout")),
		mcp.WithString("lang", mcp.Description("Display language"), mcp.Enum("ja", "en")),
		mcp.WithBoolean("include_date", mcp.Description("Also match the query against the date")),
		mcp.WithNumber("limit", mcp.Description("Maximum sessions to return (default 50, 0 for all)")),
	), s.handleSearch)

	s.mcp.AddTool(mcp.NewTool("list_facets",
		mcp.WithDescription("List the values each selector accepts, with the all-values sentinel first."),
		mcp.WithString("lang", mcp.Description("Display language"), mcp.Enum("ja", "en")),
	), s.handleFacets)

	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio blocks serving requests on stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

type searchResult struct {
	Snapshot string            `json:"snapshot"`
	Count    int               `json:"count"`
	Sessions []catalog.Session `json:"sessions"`
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, err := s.language(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	crit := catalog.Unset()
	crit.Query = req.GetString("query", "")
	crit.SearchDate = req.GetBool("include_date", s.opt.SearchDate)
	for f, arg := range map[catalog.Field]string{
		catalog.FieldTrack: "track",
		catalog.FieldDate:  "date",
		catalog.FieldHour:  "hour",
		catalog.FieldType:  "type",
	} {
		if v := req.GetString(arg, ""); v != "" {
			crit = crit.WithSelector(f, v)
		}
	}

	res, err := s.src.Catalog.Query(lang, crit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := searchResult{Snapshot: s.src.Snapshot, Count: res.Count, Sessions: res.Sessions}
	if limit := req.GetInt("limit", defaultLimit); limit > 0 && len(out.Sessions) > limit {
		out.Sessions = out.Sessions[:limit]
	}

	logger.Named("mcp").Debug().
		Interface("criteria", crit).
		Int("count", res.Count).
		Msg("search_sessions")
	return jsonResult(out)
}

func (s *Server) handleFacets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, err := s.language(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.src.Catalog.Domains(lang)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(d)
}

func (s *Server) language(req mcp.CallToolRequest) (catalog.Language, error) {
	raw := req.GetString("lang", "")
	if raw == "" {
		return s.opt.Language, nil
	}
	return catalog.ParseLanguage(raw)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
