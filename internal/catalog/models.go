// Package catalog turns a raw session export into a localized, sorted row set
// and filters it by selector values and free-text search.
package catalog

import (
	"fmt"
	"strings"
)

// Language selects which source variant of the translated fields is read.
type Language string

const (
	Japanese Language = "ja"
	English  Language = "en"
)

// ParseLanguage accepts "ja"/"en" (and a few spelled-out forms).
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ja", "jp", "japanese":
		return Japanese, nil
	case "en", "english":
		return English, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Japanese
	}
	return English
}

// Field names a column of the normalized row set.
type Field string

const (
	FieldCode        Field = "code"
	FieldTitle       Field = "title"
	FieldType        Field = "session_type"
	FieldTrack       Field = "session_tracks"
	FieldDate        Field = "date"
	FieldTimeFrom    Field = "time_from"
	FieldTimeTo      Field = "time_to"
	FieldHour        Field = "hour_from"
	FieldDescription Field = "description"
	FieldSessionID   Field = "session_id"
	FieldURL         Field = "url"
)

// Fields lists the normalized columns in display order.
var Fields = []Field{
	FieldCode, FieldTitle, FieldType, FieldTrack, FieldDate, FieldTimeFrom,
	FieldTimeTo, FieldHour, FieldDescription, FieldSessionID, FieldURL,
}

// Session is one projected catalog row.
type Session struct {
	Code          string `json:"code"`
	Title         string `json:"title"`
	SessionType   string `json:"session_type"`
	SessionTracks string `json:"session_tracks"`
	Date          string `json:"date"`
	TimeFrom      string `json:"time_from"`
	TimeTo        string `json:"time_to"`
	HourFrom      string `json:"hour_from"`
	Description   string `json:"description"`
	SessionID     string `json:"session_id"`
	URL           string `json:"url"`
}

// Value returns the value of field f.
func (s *Session) Value(f Field) string {
	switch f {
	case FieldCode:
		return s.Code
	case FieldTitle:
		return s.Title
	case FieldType:
		return s.SessionType
	case FieldTrack:
		return s.SessionTracks
	case FieldDate:
		return s.Date
	case FieldTimeFrom:
		return s.TimeFrom
	case FieldTimeTo:
		return s.TimeTo
	case FieldHour:
		return s.HourFrom
	case FieldDescription:
		return s.Description
	case FieldSessionID:
		return s.SessionID
	case FieldURL:
		return s.URL
	}
	return ""
}

// Table is a raw, row-oriented export: a header and string cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) index() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	return idx
}

// SchemaError reports required source columns absent from a Table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}
