package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// All is the selector value meaning "no restriction".
const All = "すべて"

// Criteria is one set of filter inputs. A selector that is blank or All does
// not restrict. An empty Query does not restrict.
type Criteria struct {
	Track string `json:"track,omitempty"`
	Date  string `json:"date,omitempty"`
	Hour  string `json:"hour,omitempty"`
	Type  string `json:"type,omitempty"`
	Query string `json:"query,omitempty"`

	// SearchDate adds the date column to the free-text fields.
	SearchDate bool `json:"search_date,omitempty"`
}

// Unset returns criteria with every selector on All.
func Unset() Criteria {
	return Criteria{Track: All, Date: All, Hour: All, Type: All}
}

// Selector returns the selector value for a filterable field.
func (c Criteria) Selector(f Field) string {
	switch f {
	case FieldTrack:
		return c.Track
	case FieldDate:
		return c.Date
	case FieldHour:
		return c.Hour
	case FieldType:
		return c.Type
	}
	return ""
}

// WithSelector returns a copy of c with the selector for f set to v.
func (c Criteria) WithSelector(f Field, v string) Criteria {
	switch f {
	case FieldTrack:
		c.Track = v
	case FieldDate:
		c.Date = v
	case FieldHour:
		c.Hour = v
	case FieldType:
		c.Type = v
	}
	return c
}

// Clamp resets selectors whose value is not in d to All.
func (c Criteria) Clamp(d Domains) Criteria {
	for _, f := range SelectorFields {
		v := c.Selector(f)
		if isActive(v) && !d.Contains(f, v) {
			c = c.WithSelector(f, All)
		}
	}
	return c
}

// IsUnset reports whether c restricts nothing.
func (c Criteria) IsUnset() bool {
	for _, f := range SelectorFields {
		if isActive(c.Selector(f)) {
			return false
		}
	}
	return c.Query == ""
}

func isActive(v string) bool { return v != "" && v != All }

// searchFields are tested by the free-text query.
var searchFields = []Field{FieldCode, FieldTitle, FieldType, FieldTrack, FieldDescription}

// SearchFields returns the fields the free-text query is matched against.
func (c Criteria) SearchFields() []Field {
	if c.SearchDate {
		return append(append([]Field(nil), searchFields...), FieldDate)
	}
	return append([]Field(nil), searchFields...)
}

type predicate func(*Session) bool

// predicates builds one predicate per active criterion.
func (c Criteria) predicates() []predicate {
	var preds []predicate
	for _, f := range SelectorFields {
		if v := c.Selector(f); isActive(v) {
			preds = append(preds, equals(f, v))
		}
	}
	if c.Query != "" {
		preds = append(preds, containsAny(c.SearchFields(), c.Query))
	}
	return preds
}

func equals(f Field, v string) predicate {
	return func(s *Session) bool { return s.Value(f) == v }
}

// containsAny matches when any field contains q under Unicode case folding.
func containsAny(fields []Field, q string) predicate {
	fold := cases.Fold()
	needle := fold.String(q)
	return func(s *Session) bool {
		for _, f := range fields {
			if strings.Contains(fold.String(s.Value(f)), needle) {
				return true
			}
		}
		return false
	}
}

// Filter returns the rows of rows that satisfy every active criterion, in
// their original order. rows is not modified. The result is never nil.
func Filter(rows []Session, c Criteria) []Session {
	preds := c.predicates()
	out := make([]Session, 0, len(rows))
	for i := range rows {
		if matchAll(preds, &rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matchAll(preds []predicate, s *Session) bool {
	for _, p := range preds {
		if !p(s) {
			return false
		}
	}
	return true
}
