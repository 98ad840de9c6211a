package catalog

import "slices"

// SelectorFields are the fields that have an exact-match selector.
var SelectorFields = []Field{FieldTrack, FieldDate, FieldHour, FieldType}

// DistinctSorted returns the sorted unique non-blank values of f with All
// prepended.
func DistinctSorted(rows []Session, f Field) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for i := range rows {
		v := rows[i].Value(f)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return append([]string{All}, values...)
}

// Domains holds the selectable values of every selector.
type Domains struct {
	Tracks []string `json:"session_tracks"`
	Dates  []string `json:"date"`
	Hours  []string `json:"hour_from"`
	Types  []string `json:"session_type"`
}

// DomainsOf enumerates all selector domains of rows.
func DomainsOf(rows []Session) Domains {
	return Domains{
		Tracks: DistinctSorted(rows, FieldTrack),
		Dates:  DistinctSorted(rows, FieldDate),
		Hours:  DistinctSorted(rows, FieldHour),
		Types:  DistinctSorted(rows, FieldType),
	}
}

// For returns the domain of selector field f.
func (d Domains) For(f Field) []string {
	switch f {
	case FieldTrack:
		return d.Tracks
	case FieldDate:
		return d.Dates
	case FieldHour:
		return d.Hours
	case FieldType:
		return d.Types
	}
	return nil
}

// Contains reports whether v is a selectable value of f.
func (d Domains) Contains(f Field, v string) bool {
	return slices.Contains(d.For(f), v)
}
