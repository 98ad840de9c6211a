package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/source"
)

func testServer(t *testing.T, opt Options) *Server {
	t.Helper()
	tbl := catalog.Table{
		Columns: append([]string(nil), catalog.RequiredColumns...),
		Rows: [][]string{
			{"DEF300", "Streaming pipelines", "ストリーミング", "Breakout", "Engineering", "エンジニアリング", "2025-04-09", "14:00:00", "14:45:00", "14", "Snowpipe deep dive", "Snowpipe 詳細", "id-3", "https://example.com/s/3"},
			{"ABC101", "Intro to X", "Xの紹介", "Breakout", "Data", "データ", "2025-04-08", "09:00:00", "09:45:00", "9", "Learn the basics", "基本を学ぶ", "id-1", "https://example.com/s/1"},
			{"XYZ200", "Opening Keynote", "基調講演", "Keynote", "Featured", "注目", "2025-04-08", "08:00:00", "08:50:00", "8", "Welcome", "ようこそ", "id-2", "https://example.com/s/2"},
		},
	}
	return New(&source.Loaded{Catalog: catalog.New(tbl), Snapshot: "2025-04-01"}, opt)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func decodeSearch(t *testing.T, res *mcp.CallToolResult) searchResult {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out searchResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestSearchAll(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(nil))
	require.NoError(t, err)

	out := decodeSearch(t, res)
	assert.Equal(t, "2025-04-01", out.Snapshot)
	assert.Equal(t, 3, out.Count)
	require.Len(t, out.Sessions, 3)
	assert.Equal(t, "XYZ200", out.Sessions[0].Code)
	assert.Equal(t, "基調講演", out.Sessions[0].Title)
}

func TestSearchSelectorsAndQuery(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{
		"lang":  "en",
		"type":  "Breakout",
		"query": "SNOWPIPE",
	}))
	require.NoError(t, err)

	out := decodeSearch(t, res)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "DEF300", out.Sessions[0].Code)
	assert.Equal(t, "Streaming pipelines", out.Sessions[0].Title)
}

func TestSearchHourBucket(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{"hour": "09時"}))
	require.NoError(t, err)

	out := decodeSearch(t, res)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "ABC101", out.Sessions[0].Code)
}

func TestSearchUnknownValueIsEmpty(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{"track": "Nope"}))
	require.NoError(t, err)

	out := decodeSearch(t, res)
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, out.Sessions)
}

func TestSearchIncludeDate(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{"query": "04-09"}))
	require.NoError(t, err)
	assert.Equal(t, 0, decodeSearch(t, res).Count)

	res, err = s.handleSearch(context.Background(), call(map[string]any{"query": "04-09", "include_date": true}))
	require.NoError(t, err)
	assert.Equal(t, 1, decodeSearch(t, res).Count)

	// the server default applies when the argument is absent
	s = testServer(t, Options{SearchDate: true})
	res, err = s.handleSearch(context.Background(), call(map[string]any{"query": "04-09"}))
	require.NoError(t, err)
	assert.Equal(t, 1, decodeSearch(t, res).Count)
}

func TestSearchLimit(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{"limit": 2}))
	require.NoError(t, err)

	out := decodeSearch(t, res)
	assert.Equal(t, 3, out.Count)
	assert.Len(t, out.Sessions, 2)
}

func TestSearchBadLanguage(t *testing.T) {
	s := testServer(t, Options{})
	res, err := s.handleSearch(context.Background(), call(map[string]any{"lang": "fr"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown language")
}

func TestSearchSchemaError(t *testing.T) {
	s := New(&source.Loaded{Catalog: catalog.New(catalog.Table{Columns: []string{"code"}})}, Options{})
	res, err := s.handleSearch(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "missing required columns")
}

func TestListFacets(t *testing.T) {
	s := testServer(t, Options{Language: catalog.English})
	res, err := s.handleFacets(context.Background(), call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var d catalog.Domains
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &d))
	assert.Equal(t, []string{catalog.All, "Data", "Engineering", "Featured"}, d.Tracks)
	assert.Equal(t, []string{catalog.All, "08時", "09時", "14時"}, d.Hours)

	res, err = s.handleFacets(context.Background(), call(map[string]any{"lang": "ja"}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &d))
	assert.Contains(t, d.Tracks, "データ")
}

func TestToolsList(t *testing.T) {
	s := testServer(t, Options{})
	resp := s.MCP().HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"search_sessions"`)
	assert.Contains(t, string(data), `"list_facets"`)
}
