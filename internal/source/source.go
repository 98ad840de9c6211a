// Package source resolves the configured snapshot and loads it into a
// catalog, either from an export directory or from the SQLite store.
package source

import (
	"fmt"
	"path/filepath"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/config"
	"github.com/jwulff/summit/internal/db"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/snapshot"
)

// Loaded is a validated catalog plus where it came from.
type Loaded struct {
	Catalog  *catalog.Catalog
	Snapshot string // date, empty for an undated export
	Origin   string // file path or database path
}

// Label is a short human description, e.g. "2024-06-04 (data_cloud_summit_2024-06-04.csv)".
func (l *Loaded) Label() string {
	date := l.Snapshot
	if date == "" {
		date = "-"
	}
	return fmt.Sprintf("%s (%s)", date, filepath.Base(l.Origin))
}

// Open loads the snapshot named by cfg. The store wins over the export
// directory when cfg.DB is set. Missing columns surface as a wrapped
// *catalog.SchemaError.
func Open(cfg config.DataConfig) (*Loaded, error) {
	var (
		l   *Loaded
		err error
	)
	if cfg.DB != "" {
		l, err = fromStore(cfg.DB, cfg.Snapshot)
	} else {
		l, err = fromDir(snapshot.Dir{Path: cfg.Dir, Prefix: cfg.Prefix}, cfg.Snapshot)
	}
	if err != nil {
		return nil, err
	}
	if err := l.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", l.Label(), err)
	}
	logger.Named("source").Info().
		Str("snapshot", l.Snapshot).
		Str("origin", l.Origin).
		Int("rows", l.Catalog.Len()).
		Msg("snapshot loaded")
	return l, nil
}

// List returns the snapshot dates available under cfg.
func List(cfg config.DataConfig) ([]string, error) {
	if cfg.DB != "" {
		store, err := db.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		snaps, err := store.Snapshots()
		if err != nil {
			return nil, err
		}
		out := make([]string, len(snaps))
		for i, s := range snaps {
			out[i] = s.Date
		}
		return out, nil
	}
	list, err := snapshot.Dir{Path: cfg.Dir, Prefix: cfg.Prefix}.List()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Date
	}
	return out, nil
}

func fromDir(dir snapshot.Dir, date string) (*Loaded, error) {
	sn, err := dir.Resolve(date)
	if err != nil {
		return nil, err
	}
	t, err := snapshot.Load(sn.Path)
	if err != nil {
		return nil, err
	}
	return &Loaded{Catalog: catalog.New(t), Snapshot: sn.Date, Origin: sn.Path}, nil
}

func fromStore(path, date string) (*Loaded, error) {
	store, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if date == "" {
		latest, err := store.LatestSnapshot()
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, fmt.Errorf("%w in %s", snapshot.ErrNoSnapshot, path)
		}
		date = latest.Date
	}
	t, err := store.Table(date)
	if err != nil {
		return nil, err
	}
	return &Loaded{Catalog: catalog.New(t), Snapshot: date, Origin: path}, nil
}
