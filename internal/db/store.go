package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwulff/summit/internal/catalog"

	_ "modernc.org/sqlite"
)

// ErrUnknownSnapshot is returned when a snapshot date has not been imported.
var ErrUnknownSnapshot = errors.New("unknown snapshot")

const schema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		date TEXT PRIMARY KEY,
		importedAt REAL NOT NULL,
		rowCount INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_columns (
		snapshot TEXT NOT NULL REFERENCES snapshots(date) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (snapshot, position)
	);

	CREATE TABLE IF NOT EXISTS snapshot_cells (
		snapshot TEXT NOT NULL REFERENCES snapshots(date) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		position INTEGER NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (snapshot, ordinal, position)
	);
`

// Store provides access to the snapshot database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "summit", "summit.sqlite")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "summit", "summit.sqlite")
}

// Open opens an existing database in read-only mode.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Create opens the database for writing, creating the file and schema if
// needed.
func Create(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Import stores t under date, replacing any earlier import of that date.
// It returns the number of rows written.
func (s *Store) Import(ctx context.Context, date string, t catalog.Table) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM snapshot_cells WHERE snapshot = ?`,
		`DELETE FROM snapshot_columns WHERE snapshot = ?`,
		`DELETE FROM snapshots WHERE date = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, date); err != nil {
			return 0, fmt.Errorf("clear snapshot: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (date, importedAt, rowCount) VALUES (?, ?, ?)`,
		date, unixFromTime(time.Now()), len(t.Rows)); err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	for i, name := range t.Columns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_columns (snapshot, position, name) VALUES (?, ?, ?)`,
			date, i, name); err != nil {
			return 0, fmt.Errorf("insert column %q: %w", name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_cells (snapshot, ordinal, position, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare cells: %w", err)
	}
	defer stmt.Close()

	for ord, row := range t.Rows {
		for pos := range t.Columns {
			value := ""
			if pos < len(row) {
				value = row[pos]
			}
			if _, err := stmt.ExecContext(ctx, date, ord, pos, value); err != nil {
				return 0, fmt.Errorf("insert row %d: %w", ord, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(t.Rows), nil
}

// Snapshots returns all imported snapshots, ordered by date.
func (s *Store) Snapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT s.date, s.importedAt, s.rowCount,
			(SELECT COUNT(*) FROM snapshot_columns c WHERE c.snapshot = s.date)
		FROM snapshots s
		ORDER BY s.date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		var importedAt float64
		if err := rows.Scan(&sn.Date, &importedAt, &sn.RowCount, &sn.Columns); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		sn.ImportedAt = timeFromUnix(importedAt)
		snaps = append(snaps, sn)
	}
	return snaps, rows.Err()
}

// LatestSnapshot returns the snapshot with the greatest date, if any.
func (s *Store) LatestSnapshot() (*Snapshot, error) {
	row := s.db.QueryRow(`
		SELECT date, importedAt, rowCount
		FROM snapshots
		ORDER BY date DESC
		LIMIT 1
	`)

	var sn Snapshot
	var importedAt float64
	if err := row.Scan(&sn.Date, &importedAt, &sn.RowCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	sn.ImportedAt = timeFromUnix(importedAt)
	return &sn, nil
}

// Table rebuilds the imported export for date in its original column and
// row order.
func (s *Store) Table(date string) (catalog.Table, error) {
	var rowCount int
	err := s.db.QueryRow(`SELECT rowCount FROM snapshots WHERE date = ?`, date).Scan(&rowCount)
	if err == sql.ErrNoRows {
		return catalog.Table{}, fmt.Errorf("%w %q", ErrUnknownSnapshot, date)
	}
	if err != nil {
		return catalog.Table{}, fmt.Errorf("query snapshot: %w", err)
	}

	cols, err := s.columns(date)
	if err != nil {
		return catalog.Table{}, err
	}

	t := catalog.Table{Columns: cols, Rows: make([][]string, rowCount)}
	for i := range t.Rows {
		t.Rows[i] = make([]string, len(cols))
	}

	rows, err := s.db.Query(`
		SELECT ordinal, position, value
		FROM snapshot_cells
		WHERE snapshot = ?
		ORDER BY ordinal ASC, position ASC
	`, date)
	if err != nil {
		return catalog.Table{}, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ord, pos int
		var value string
		if err := rows.Scan(&ord, &pos, &value); err != nil {
			return catalog.Table{}, fmt.Errorf("scan cell: %w", err)
		}
		if ord < 0 || ord >= rowCount || pos < 0 || pos >= len(cols) {
			continue
		}
		t.Rows[ord][pos] = value
	}
	return t, rows.Err()
}

func (s *Store) columns(date string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT name
		FROM snapshot_columns
		WHERE snapshot = ?
		ORDER BY position ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
