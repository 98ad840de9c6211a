package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/jwulff/summit/internal/logger"
)

// Env is a prefix-scoped view over environment variables.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

// OSEnv reads the process environment.
func OSEnv() Env { return Env{lookup: os.LookupEnv} }

// MapEnv reads from m; used by tests.
func MapEnv(m map[string]string) Env {
	return Env{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix returns a child view with an additional prefix.
func (e Env) Prefix(p string) Env { return Env{prefix: e.prefix + p, lookup: e.lookup} }

func (e Env) get(key string) string {
	v, _ := e.lookup(e.prefix + key)
	return strings.TrimSpace(v)
}

// MayString returns the value or def if missing/empty.
func (e Env) MayString(key, def string) string {
	if v := e.get(key); v != "" {
		return v
	}
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid.
func (e Env) MayBool(key string, def bool) bool {
	s := e.get(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", e.prefix+key).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayCSV returns the comma-separated values or def if missing/empty.
func (e Env) MayCSV(key string, def []string) []string {
	s := e.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
