package catalog

import (
	"slices"
	"sync"
)

// Catalog holds one raw snapshot and caches its projection per language.
// It is safe for concurrent use.
type Catalog struct {
	table Table

	mu      sync.Mutex
	rows    map[Language][]Session
	domains map[Language]Domains
}

// Result is what a renderer needs for one recompute.
type Result struct {
	Sessions []Session `json:"sessions"`
	Domains  Domains   `json:"domains"`
	Count    int       `json:"count"`
}

// New wraps t. The table must not be modified afterwards.
func New(t Table) *Catalog {
	return &Catalog{
		table:   t,
		rows:    make(map[Language][]Session),
		domains: make(map[Language]Domains),
	}
}

// Len returns the number of raw rows.
func (c *Catalog) Len() int { return len(c.table.Rows) }

// Validate projects the table once to surface a SchemaError early.
func (c *Catalog) Validate() error {
	_, _, err := c.projection(Japanese)
	return err
}

func (c *Catalog) projection(lang Language) ([]Session, Domains, error) {
	if lang != English {
		lang = Japanese
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if rows, ok := c.rows[lang]; ok {
		return rows, c.domains[lang], nil
	}
	rows, err := Project(c.table, lang)
	if err != nil {
		return nil, Domains{}, err
	}
	d := DomainsOf(rows)
	c.rows[lang] = rows
	c.domains[lang] = d
	return rows, d, nil
}

// Rows returns a copy of the normalized rows for lang.
func (c *Catalog) Rows(lang Language) ([]Session, error) {
	rows, _, err := c.projection(lang)
	if err != nil {
		return nil, err
	}
	return slices.Clone(rows), nil
}

// Domains returns the selector domains for lang.
func (c *Catalog) Domains(lang Language) (Domains, error) {
	_, d, err := c.projection(lang)
	return d, err
}

// Query filters the normalized rows for lang. Criteria are always applied to
// the full normalized set.
func (c *Catalog) Query(lang Language, crit Criteria) (Result, error) {
	rows, d, err := c.projection(lang)
	if err != nil {
		return Result{}, err
	}
	sessions := Filter(rows, crit)
	return Result{Sessions: sessions, Domains: d, Count: len(sessions)}, nil
}
