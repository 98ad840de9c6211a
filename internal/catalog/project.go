package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// HourSuffix is appended to the zero-padded start hour.
const HourSuffix = "時"

// Source columns. The _ja variants carry the Japanese text.
const (
	colCode          = "code"
	colTitle         = "title"
	colTitleJa       = "title_ja"
	colSessionType   = "session_type"
	colTracks        = "session_tracks"
	colTracksJa      = "session_tracks_ja"
	colDate          = "date"
	colTimeFrom      = "time_from"
	colTimeTo        = "time_to"
	colHourFrom      = "hour_from"
	colDescription   = "description"
	colDescriptionJa = "description_ja"
	colSessionID     = "session_id"
	colURL           = "url"
)

// RequiredColumns must all be present in a Table passed to Project.
var RequiredColumns = []string{
	colCode, colTitle, colTitleJa, colSessionType, colTracks, colTracksJa,
	colDate, colTimeFrom, colTimeTo, colHourFrom, colDescription,
	colDescriptionJa, colSessionID, colURL,
}

// Project selects the language variant of each row, derives the hour label
// and sorts by date, start time and the Japanese track label. The track key
// is the same for both languages, so both produce the same session order.
func Project(t Table, lang Language) ([]Session, error) {
	idx := t.index()
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	title, tracks, desc := colTitleJa, colTracksJa, colDescriptionJa
	if lang == English {
		title, tracks, desc = colTitle, colTracks, colDescription
	}

	type keyed struct {
		s     Session
		clock string
		track string
	}
	out := make([]keyed, 0, len(t.Rows))
	for _, row := range t.Rows {
		get := func(col string) string {
			if i := idx[col]; i < len(row) {
				return row[i]
			}
			return ""
		}
		s := Session{
			Code:          get(colCode),
			Title:         get(title),
			SessionType:   get(colSessionType),
			SessionTracks: get(tracks),
			Date:          get(colDate),
			TimeFrom:      get(colTimeFrom),
			TimeTo:        get(colTimeTo),
			HourFrom:      HourLabel(get(colHourFrom)),
			Description:   get(desc),
			SessionID:     get(colSessionID),
			URL:           get(colURL),
		}
		out = append(out, keyed{s: s, clock: clockKey(s.TimeFrom), track: get(colTracksJa)})
	}

	slices.SortStableFunc(out, func(a, b keyed) int {
		return cmp.Or(
			strings.Compare(a.s.Date, b.s.Date),
			strings.Compare(a.clock, b.clock),
			strings.Compare(a.track, b.track),
		)
	})

	sessions := make([]Session, len(out))
	for i := range out {
		sessions[i] = out[i].s
	}
	return sessions, nil
}

// HourLabel renders an integer-like hour as "09時". Values that are not
// integers keep the last three characters of "00"+raw+"時". A blank hour
// has no label.
func HourLabel(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if h, err := strconv.Atoi(v); err == nil && h >= 0 {
		return fmt.Sprintf("%02d%s", h, HourSuffix)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f == math.Trunc(f) && f < 1e6 {
		return fmt.Sprintf("%02d%s", int(f), HourSuffix)
	}
	r := []rune("00" + v + HourSuffix)
	return string(r[len(r)-3:])
}

// ClockLabel renders a time-of-day value as HH:mm. It accepts "9:05",
// "09:05:00" and datetime forms such as "2024-06-04 09:05:00".
// Unparseable input is returned unchanged.
func ClockLabel(raw string) string {
	h, m, _, ok := parseClock(raw)
	if !ok {
		return raw
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// clockKey orders time-of-day values chronologically.
func clockKey(raw string) string {
	h, m, s, ok := parseClock(raw)
	if !ok {
		return raw
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func parseClock(raw string) (h, m, s int, ok bool) {
	v := strings.TrimSpace(raw)
	if i := strings.LastIndexAny(v, " T"); i >= 0 {
		v = v[i+1:]
	}
	// drop fractional seconds and zone suffixes
	if i := strings.IndexAny(v, ".Z+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	if nums[0] > 23 || nums[1] > 59 || nums[2] > 59 {
		return 0, 0, 0, false
	}
	return nums[0], nums[1], nums[2], true
}
