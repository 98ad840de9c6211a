package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/source"

	tea "github.com/charmbracelet/bubbletea"
)

func fixture() *source.Loaded {
	t := catalog.Table{
		Columns: append([]string(nil), catalog.RequiredColumns...),
		Rows: [][]string{
			{"DEF300", "Streaming pipelines", "ストリーミング", "Breakout", "Engineering", "エンジニアリング", "2025-04-09", "14:00:00", "14:45:00", "14", "Snowpipe deep dive", "Snowpipe 詳細", "id-3", "https://example.com/s/3"},
			{"ABC101", "Intro to X", "Xの紹介", "Breakout", "Data", "データ", "2025-04-08", "09:00:00", "09:45:00", "9", "Learn the basics", "基本を学ぶ", "id-1", "https://example.com/s/1"},
			{"XYZ200", "Opening Keynote", "基調講演", "Keynote", "Featured", "注目", "2025-04-08", "08:00:00", "08:50:00", "8", "Welcome", "ようこそ", "id-2", "https://example.com/s/2"},
		},
	}
	return &source.Loaded{Catalog: catalog.New(t), Snapshot: "2025-04-01", Origin: "data_cloud_summit_2025-04-01.csv"}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := New(func() (*source.Loaded, error) { return fixture(), nil }, Options{})
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m, _ = applyUpdate(m, CatalogLoadedMsg{Source: fixture()})
	return m
}

func applyUpdate(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = applyUpdate(m, msg)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m := New(nil, Options{Language: "fr", SearchDate: true})

	if m.loaded {
		t.Error("should not be loaded before CatalogLoadedMsg")
	}
	if m.focus != FocusTable {
		t.Errorf("focus = %d, want FocusTable", m.focus)
	}
	if m.lang != catalog.Japanese {
		t.Errorf("lang = %q, want ja", m.lang)
	}
	if !m.criteria.SearchDate {
		t.Error("SearchDate option should carry into criteria")
	}
	if m.criteria.Track != catalog.All {
		t.Errorf("track = %q, want %q", m.criteria.Track, catalog.All)
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New(nil, Options{})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestLoadCmd(t *testing.T) {
	msg := loadCmd(func() (*source.Loaded, error) { return fixture(), nil })()
	if _, ok := msg.(CatalogLoadedMsg); !ok {
		t.Fatalf("msg = %T, want CatalogLoadedMsg", msg)
	}

	boom := errors.New("boom")
	msg = loadCmd(func() (*source.Loaded, error) { return nil, boom })()
	em, ok := msg.(CatalogErrorMsg)
	if !ok || !errors.Is(em.Err, boom) {
		t.Fatalf("msg = %#v, want CatalogErrorMsg(boom)", msg)
	}
}

func TestLoadCmdSchemaError(t *testing.T) {
	bad := &source.Loaded{Catalog: catalog.New(catalog.Table{Columns: []string{"code"}})}
	msg := loadCmd(func() (*source.Loaded, error) { return bad, nil })()

	em, ok := msg.(CatalogErrorMsg)
	if !ok {
		t.Fatalf("msg = %T, want CatalogErrorMsg", msg)
	}
	var se *catalog.SchemaError
	if !errors.As(em.Err, &se) {
		t.Fatalf("err = %v, want SchemaError", em.Err)
	}
}

func TestCatalogLoaded(t *testing.T) {
	m := loadedModel(t)

	if !m.loaded {
		t.Fatal("should be loaded")
	}
	if len(m.result) != 3 {
		t.Errorf("result = %d rows, want 3", len(m.result))
	}
	if m.result[0].Code != "XYZ200" {
		t.Errorf("first row = %q, want XYZ200", m.result[0].Code)
	}
	if got := len(m.table.Rows()); got != 3 {
		t.Errorf("table rows = %d, want 3", got)
	}
	if m.domains.Tracks[0] != catalog.All {
		t.Errorf("track domain should start with %q", catalog.All)
	}
}

func TestCatalogErrorRendered(t *testing.T) {
	m := New(nil, Options{})
	m, _ = applyUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = applyUpdate(m, CatalogErrorMsg{Err: &catalog.SchemaError{Missing: []string{"title_ja"}}})

	view := m.View()
	if !strings.Contains(view, "Error") || !strings.Contains(view, "title_ja") {
		t.Errorf("view should show the schema error, got:\n%s", view)
	}
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	m := New(nil, Options{})
	m = press(m, "tab", "e")
	if m.focus != FocusTable || m.lang != catalog.Japanese {
		t.Error("keys other than quit should be ignored before load")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := loadedModel(t)

	m = press(m, "tab")
	if m.focus != FocusTrack {
		t.Errorf("after tab, focus = %d, want FocusTrack", m.focus)
	}
	if m.table.Focused() {
		t.Error("table should blur when a selector has focus")
	}

	m = press(m, "shift+tab")
	if m.focus != FocusTable {
		t.Errorf("after shift+tab, focus = %d, want FocusTable", m.focus)
	}
	if !m.table.Focused() {
		t.Error("table should be focused again")
	}
}

func TestSelectorCycle(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "tab") // track selector

	m = press(m, "right")
	want := m.domains.Tracks[1]
	if m.criteria.Track != want {
		t.Fatalf("track = %q, want %q", m.criteria.Track, want)
	}
	for _, s := range m.result {
		if s.SessionTracks != want {
			t.Errorf("row %s has track %q, want %q", s.Code, s.SessionTracks, want)
		}
	}

	m = press(m, "left")
	if m.criteria.Track != catalog.All {
		t.Errorf("left should return to %q, got %q", catalog.All, m.criteria.Track)
	}
	if len(m.result) != 3 {
		t.Errorf("result = %d rows, want 3", len(m.result))
	}

	m = press(m, "left")
	last := m.domains.Tracks[len(m.domains.Tracks)-1]
	if m.criteria.Track != last {
		t.Errorf("left from first should wrap to %q, got %q", last, m.criteria.Track)
	}
}

func TestSelectorDownMovesFocus(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "tab", "down", "down")
	if m.focus != FocusHour {
		t.Errorf("focus = %d, want FocusHour", m.focus)
	}
}

func TestLanguageToggleClampsSelection(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "tab", "right")
	jaTrack := m.criteria.Track

	m = press(m, "e")
	if m.lang != catalog.English {
		t.Fatalf("lang = %q, want en", m.lang)
	}
	if m.criteria.Track != catalog.All {
		t.Errorf("track %q should reset to %q after toggle, got %q", jaTrack, catalog.All, m.criteria.Track)
	}
	if len(m.result) != 3 {
		t.Errorf("result = %d rows, want 3", len(m.result))
	}
	if m.result[0].Title != "Opening Keynote" {
		t.Errorf("first title = %q, want English", m.result[0].Title)
	}

	m = press(m, "e")
	if m.result[0].Title != "基調講演" {
		t.Errorf("first title = %q after toggling back", m.result[0].Title)
	}
}

func TestSearchTyping(t *testing.T) {
	m := loadedModel(t)

	m = press(m, "/")
	if m.focus != FocusSearch {
		t.Fatalf("focus = %d, want FocusSearch", m.focus)
	}

	m = press(m, "snow")
	if m.criteria.Query != "snow" {
		t.Errorf("query = %q, want snow", m.criteria.Query)
	}
	if len(m.result) != 1 || m.result[0].Code != "DEF300" {
		t.Errorf("result = %v, want [DEF300]", codes(m.result))
	}

	// "e" and "q" are text while searching
	m = press(m, "eq")
	if m.lang != catalog.Japanese {
		t.Error("e should not toggle language while typing")
	}
	if m.criteria.Query != "snoweq" {
		t.Errorf("query = %q, want snoweq", m.criteria.Query)
	}

	m = press(m, "esc")
	if m.focus != FocusTable {
		t.Errorf("esc should leave search, focus = %d", m.focus)
	}
	if m.criteria.Query != "snoweq" {
		t.Error("query should survive leaving the search box")
	}
}

func TestReset(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "tab", "right", "/", "x", "esc")
	if m.criteria.IsUnset() {
		t.Fatal("criteria should be set before reset")
	}

	m = press(m, "r")
	if !m.criteria.IsUnset() {
		t.Errorf("criteria = %+v, want unset", m.criteria)
	}
	if m.search.Value() != "" {
		t.Errorf("search = %q, want empty", m.search.Value())
	}
	if len(m.result) != 3 {
		t.Errorf("result = %d rows, want 3", len(m.result))
	}
}

func TestDetailToggle(t *testing.T) {
	m := loadedModel(t)

	m = press(m, "enter")
	if !m.showDetail {
		t.Fatal("enter should open the detail pane")
	}
	view := m.View()
	if !strings.Contains(view, "https://example.com/s/2") {
		t.Errorf("detail should show selected session url, got:\n%s", view)
	}

	m = press(m, "enter")
	if m.showDetail {
		t.Error("enter again should close the detail pane")
	}
}

func TestViewAfterLoad(t *testing.T) {
	m := loadedModel(t)
	view := m.View()

	for _, want := range []string{"検索条件", "分類", "日付", "開始時間帯", "セッション種別", "検索", "3件", "XYZ200", "04/08"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, "e")
	view = m.View()
	for _, want := range []string{"Filters", "Track", "3 sessions"} {
		if !strings.Contains(view, want) {
			t.Errorf("english view missing %q", want)
		}
	}
}

func TestEmptyResultView(t *testing.T) {
	m := loadedModel(t)
	m = press(m, "/", "nothing-matches-this", "esc")

	if len(m.result) != 0 {
		t.Fatalf("result = %d rows, want 0", len(m.result))
	}
	view := m.View()
	if !strings.Contains(view, "0件") {
		t.Error("view should show a zero count")
	}
	if !strings.Contains(view, "該当するセッションはありません") {
		t.Error("view should show the empty-result notice")
	}
}

func TestQuit(t *testing.T) {
	m := loadedModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestDateLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2025-04-08", "04/08"},
		{"2025/06/03", "06/03"},
		{"2025-04-08 00:00:00", "04/08"},
		{"TBD", "TBD"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateLabel(tt.in); got != tt.want {
			t.Errorf("DateLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func codes(rows []catalog.Session) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code
	}
	return out
}
