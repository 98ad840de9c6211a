// Package config loads summit settings from defaults, a YAML file and
// SUMMIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jwulff/summit/internal/snapshot"
)

// Config holds all summit configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	UI     UIConfig     `yaml:"ui"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
	HTTP   HTTPConfig   `yaml:"http"`
}

// DataConfig says where snapshots come from.
type DataConfig struct {
	Dir      string `yaml:"dir" validate:"required_without=DB"`
	Prefix   string `yaml:"prefix" validate:"required"`
	Snapshot string `yaml:"snapshot"` // date; empty selects the latest
	DB       string `yaml:"db"`       // when set, read from the SQLite store
}

// UIConfig configures the viewer.
type UIConfig struct {
	Language string `yaml:"language" validate:"oneof=ja en"`
}

// SearchConfig configures free-text search.
type SearchConfig struct {
	IncludeDate bool `yaml:"include_date"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error off"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file"`
}

// HTTPConfig configures the JSON API.
type HTTPConfig struct {
	Addr        string   `yaml:"addr" validate:"required,hostname_port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: DataConfig{
			Dir:    ".",
			Prefix: snapshot.DefaultPrefix,
		},
		UI:  UIConfig{Language: "ja"},
		Log: LogConfig{Level: "info", Format: "console"},
		HTTP: HTTPConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "summit", "config.yaml")
}

// Load reads defaults, then the file at path, then the environment. An empty
// path means DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.ApplyEnv(OSEnv())
	return cfg, nil
}

// ApplyEnv overlays SUMMIT_* variables from env.
func (c *Config) ApplyEnv(env Env) {
	e := env.Prefix("SUMMIT_")

	c.Data.Dir = e.MayString("DATA_DIR", c.Data.Dir)
	c.Data.Prefix = e.MayString("DATA_PREFIX", c.Data.Prefix)
	c.Data.Snapshot = e.MayString("SNAPSHOT", c.Data.Snapshot)
	c.Data.DB = e.MayString("DB", c.Data.DB)
	c.UI.Language = strings.ToLower(e.MayString("LANG", c.UI.Language))
	c.Search.IncludeDate = e.MayBool("SEARCH_INCLUDE_DATE", c.Search.IncludeDate)
	c.Log.Level = strings.ToLower(e.MayString("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(e.MayString("LOG_FORMAT", c.Log.Format))
	c.Log.File = e.MayString("LOG_FILE", c.Log.File)
	c.HTTP.Addr = e.MayString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.CORSOrigins = e.MayCSV("HTTP_CORS_ORIGINS", c.HTTP.CORSOrigins)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml key names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("yaml")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		return tag
	})
	return v
}

// Validate checks field constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s (got %q)", ns, fe.Tag(), fe.Param(), fmt.Sprint(fe.Value())))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", ns, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
