// Package snapshot locates dated CSV exports of the session catalog and
// decodes them into catalog tables.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwulff/summit/internal/catalog"
)

// DefaultPrefix is the file name stem of catalog exports.
const DefaultPrefix = "data_cloud_summit"

// ErrNoSnapshot is returned when no export matches a requested date.
var ErrNoSnapshot = errors.New("no snapshot found")

// Snapshot is one export file. Date is empty for the undated file.
type Snapshot struct {
	Date string
	Path string
}

// Dir is a directory of exports named <prefix>.csv or <prefix>_<date>.csv.
type Dir struct {
	Path   string
	Prefix string
}

func (d Dir) prefix() string {
	if d.Prefix == "" {
		return DefaultPrefix
	}
	return d.Prefix
}

// List returns the exports in d ordered by date, undated first.
func (d Dir) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var out []Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		date, ok := d.dateOf(e.Name())
		if !ok {
			continue
		}
		out = append(out, Snapshot{Date: date, Path: filepath.Join(d.Path, e.Name())})
	}
	slices.SortFunc(out, func(a, b Snapshot) int { return strings.Compare(a.Date, b.Date) })
	return out, nil
}

// Resolve returns the export for date, or the latest one when date is empty.
func (d Dir) Resolve(date string) (Snapshot, error) {
	list, err := d.List()
	if err != nil {
		return Snapshot{}, err
	}
	if len(list) == 0 {
		return Snapshot{}, fmt.Errorf("%w in %s", ErrNoSnapshot, d.Path)
	}
	if date == "" {
		return list[len(list)-1], nil
	}
	want := normalizeDate(date)
	for _, s := range list {
		if normalizeDate(s.Date) == want {
			return s, nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w for %q in %s", ErrNoSnapshot, date, d.Path)
}

func (d Dir) dateOf(name string) (string, bool) {
	stem, ok := strings.CutSuffix(name, ".csv")
	if !ok {
		return "", false
	}
	if stem == d.prefix() {
		return "", true
	}
	date, ok := strings.CutPrefix(stem, d.prefix()+"_")
	if !ok || date == "" {
		return "", false
	}
	return date, true
}

// DateFromPath derives a snapshot date from an export file name: the part
// after the last underscore, when it starts with a digit.
func DateFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndexByte(stem, '_')
	if i < 0 || i == len(stem)-1 {
		return ""
	}
	date := stem[i+1:]
	if date[0] < '0' || date[0] > '9' {
		return ""
	}
	return date
}

// normalizeDate lets "2024-06-04" and "20240604" name the same snapshot.
func normalizeDate(s string) string {
	return strings.NewReplacer("-", "", "/", "", ".", "").Replace(strings.TrimSpace(s))
}

// Load reads the export at path.
func Load(path string) (catalog.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Table{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return catalog.Table{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Decode reads a header line and data rows. Short rows are padded so every
// row has one cell per column.
func Decode(r io.Reader) (catalog.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return catalog.Table{}, nil
	}
	if err != nil {
		return catalog.Table{}, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.TrimSpace(h)
	}

	t := catalog.Table{Columns: cols}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return catalog.Table{}, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		if len(rec) < len(cols) {
			rec = append(rec, make([]string, len(cols)-len(rec))...)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
