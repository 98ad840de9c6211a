// Package db provides SQLite storage for imported catalog snapshots.
package db

import "time"

// Snapshot describes one imported export.
type Snapshot struct {
	Date       string
	ImportedAt time.Time
	RowCount   int
	Columns    int
}
