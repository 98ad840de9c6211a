package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ja", cfg.UI.Language)
	assert.Equal(t, "data_cloud_summit", cfg.Data.Prefix)
	assert.False(t, cfg.Search.IncludeDate)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data:
  dir: /srv/summit
  snapshot: "20240604"
ui:
  language: en
search:
  include_date: true
log:
  level: debug
http:
  addr: 0.0.0.0:9000
  cors_origins: [https://a.example]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/srv/summit", cfg.Data.Dir)
	assert.Equal(t, "20240604", cfg.Data.Snapshot)
	assert.Equal(t, "data_cloud_summit", cfg.Data.Prefix, "unset keys keep defaults")
	assert.Equal(t, "en", cfg.UI.Language)
	assert.True(t, cfg.Search.IncludeDate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoadExplicitMissingFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unterminated"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(MapEnv(map[string]string{
		"SUMMIT_DATA_DIR":            "/data",
		"SUMMIT_SNAPSHOT":            "20240520",
		"SUMMIT_DB":                  "/tmp/s.sqlite",
		"SUMMIT_LANG":                "EN",
		"SUMMIT_SEARCH_INCLUDE_DATE": "true",
		"SUMMIT_LOG_FORMAT":          "JSON",
		"SUMMIT_HTTP_CORS_ORIGINS":   "https://a.example, ,https://b.example",
		"OTHER_DATA_DIR":             "/ignored",
	}))

	assert.Equal(t, "/data", cfg.Data.Dir)
	assert.Equal(t, "20240520", cfg.Data.Snapshot)
	assert.Equal(t, "/tmp/s.sqlite", cfg.Data.DB)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.True(t, cfg.Search.IncludeDate)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnvInvalidBoolKeepsDefault(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(MapEnv(map[string]string{"SUMMIT_SEARCH_INCLUDE_DATE": "maybe"}))
	assert.False(t, cfg.Search.IncludeDate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad language", func(c *Config) { c.UI.Language = "fr" }, "ui.language: oneof"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format: oneof"},
		{"bad addr", func(c *Config) { c.HTTP.Addr = "nowhere" }, "http.addr: hostname_port"},
		{"no source", func(c *Config) { c.Data.Dir = "" }, "data.dir: required_without"},
		{"db without dir", func(c *Config) { c.Data.Dir, c.Data.DB = "", "/tmp/x.sqlite" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
