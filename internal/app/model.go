package app

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/i18n"
	"github.com/jwulff/summit/internal/logger"
	"github.com/jwulff/summit/internal/source"
	"github.com/jwulff/summit/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Focus tracks which widget receives keys.
type Focus int

const (
	FocusTrack Focus = iota
	FocusDate
	FocusHour
	FocusType
	FocusSearch
	FocusTable
	focusCount
)

// selectorField maps the selector focuses onto catalog fields.
var selectorField = map[Focus]catalog.Field{
	FocusTrack: catalog.FieldTrack,
	FocusDate:  catalog.FieldDate,
	FocusHour:  catalog.FieldHour,
	FocusType:  catalog.FieldType,
}

// LoadFunc reads the snapshot. It runs off the update loop.
type LoadFunc func() (*source.Loaded, error)

// Options configures a new Model.
type Options struct {
	Language   catalog.Language
	SearchDate bool
}

// Model is the root bubbletea model for the session finder.
type Model struct {
	load LoadFunc

	// Data
	src     *source.Loaded
	loaded  bool
	loadErr error
	rows    []catalog.Session
	domains catalog.Domains
	result  []catalog.Session

	// Criteria
	lang     catalog.Language
	criteria catalog.Criteria
	labels   *i18n.Translator

	// Widgets
	focus  Focus
	search textinput.Model
	table  table.Model
	keys   keyMap
	help   help.Model

	// UI state
	showHelp   bool
	showDetail bool
	width      int
	height     int
}

// New creates a Model that loads its catalog with load.
func New(load LoadFunc, opt Options) Model {
	lang := opt.Language
	if lang != catalog.English {
		lang = catalog.Japanese
	}
	crit := catalog.Unset()
	crit.SearchDate = opt.SearchDate

	labels := i18n.For(lang)
	search := textinput.New()
	search.Prompt = "> "
	search.Placeholder = labels.Label(i18n.Placeholder)
	search.CharLimit = 200

	m := Model{
		load:     load,
		lang:     lang,
		criteria: crit,
		labels:   labels,
		focus:    FocusTable,
		search:   search,
		keys:     defaultKeyMap,
		help:     help.New(),
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(ui.TableStyles(true)),
	)
	return m
}

// Init starts loading the snapshot.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.load)
}

func loadCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		src, err := load()
		if err != nil {
			return CatalogErrorMsg{Err: err}
		}
		if err := src.Catalog.Validate(); err != nil {
			return CatalogErrorMsg{Err: err}
		}
		logger.Named("app").Debug().
			Dur("took", time.Since(start)).
			Int("rows", src.Catalog.Len()).
			Msg("catalog loaded")
		return CatalogLoadedMsg{Source: src}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case CatalogLoadedMsg:
		m.src = msg.Source
		m.loaded = true
		m.loadErr = nil
		m.reproject()
		return m, nil

	case CatalogErrorMsg:
		m.loadErr = msg.Err
		logger.Named("app").Error().Err(msg.Err).Msg("load catalog")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.focus == FocusSearch {
		switch {
		case key.Matches(msg, m.keys.Blur):
			cmd := m.setFocus(FocusTable)
			return m, cmd
		case key.Matches(msg, m.keys.NextFocus):
			cmd := m.setFocus(FocusTable)
			return m, cmd
		case key.Matches(msg, m.keys.PrevFocus):
			cmd := m.setFocus(FocusType)
			return m, cmd
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if q := m.search.Value(); q != m.criteria.Query {
			m.criteria.Query = q
			m.refilter()
		}
		return m, cmd
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if !m.loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.NextFocus):
		cmd := m.setFocus((m.focus + 1) % focusCount)
		return m, cmd

	case key.Matches(msg, m.keys.PrevFocus):
		cmd := m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, cmd

	case key.Matches(msg, m.keys.Search):
		cmd := m.setFocus(FocusSearch)
		return m, cmd

	case key.Matches(msg, m.keys.Language):
		m.lang = m.lang.Toggle()
		m.reproject()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		searchDate := m.criteria.SearchDate
		m.criteria = catalog.Unset()
		m.criteria.SearchDate = searchDate
		m.search.SetValue("")
		m.refilter()
		m.table.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.resize()
		return m, nil
	}

	if f, ok := selectorField[m.focus]; ok {
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cycleSelector(f, -1)
		case key.Matches(msg, m.keys.Right):
			m.cycleSelector(f, 1)
		case key.Matches(msg, m.keys.Up):
			if m.focus > FocusTrack {
				cmd := m.setFocus(m.focus - 1)
				return m, cmd
			}
		case key.Matches(msg, m.keys.Down):
			cmd := m.setFocus(m.focus + 1)
			return m, cmd
		}
		return m, nil
	}

	if m.focus == FocusTable {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setFocus moves keyboard focus and restyles the table to match.
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.table.SetStyles(ui.TableStyles(f == FocusTable))
	if f == FocusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	if f == FocusSearch {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

// cycleSelector steps a selector through its domain, wrapping at both ends.
func (m *Model) cycleSelector(f catalog.Field, delta int) {
	values := m.domains.For(f)
	if len(values) == 0 {
		return
	}
	cur := slices.Index(values, m.criteria.Selector(f))
	if cur < 0 {
		cur = 0
	}
	next := (cur + delta + len(values)) % len(values)
	m.criteria = m.criteria.WithSelector(f, values[next])
	m.refilter()
	m.table.GotoTop()
}

// reproject rebuilds rows, selector domains and labels for the current
// language. Selections that are not in the new domains fall back to All.
func (m *Model) reproject() {
	if m.src == nil {
		return
	}
	rows, err := m.src.Catalog.Rows(m.lang)
	if err != nil {
		m.loadErr = err
		return
	}
	domains, err := m.src.Catalog.Domains(m.lang)
	if err != nil {
		m.loadErr = err
		return
	}
	m.rows = rows
	m.domains = domains
	m.criteria = m.criteria.Clamp(domains)
	m.labels = i18n.For(m.lang)
	m.search.Placeholder = m.labels.Label(i18n.Placeholder)
	m.table.SetColumns(m.columns())
	m.refilter()
}

// refilter recomputes the result from the full normalized rows.
func (m *Model) refilter() {
	m.result = catalog.Filter(m.rows, m.criteria)
	m.table.SetRows(tableRows(m.result))
	if c := m.table.Cursor(); c >= len(m.result) {
		m.table.SetCursor(max(len(m.result)-1, 0))
	}
	logger.Named("app").Debug().
		Str("lang", string(m.lang)).
		Interface("criteria", m.criteria).
		Int("count", len(m.result)).
		Msg("filter")
}

// selected returns the session under the table cursor.
func (m Model) selected() (catalog.Session, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.result) {
		return catalog.Session{}, false
	}
	return m.result[i], true
}

func tableRows(sessions []catalog.Session) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		rows[i] = table.Row{
			s.Code,
			oneLine(s.Title),
			s.SessionType,
			s.SessionTracks,
			DateLabel(s.Date),
			catalog.ClockLabel(s.TimeFrom),
			catalog.ClockLabel(s.TimeTo),
			oneLine(s.Description),
		}
	}
	return rows
}

// DateLabel renders an ISO date as MM/DD. Anything else is returned as is.
func DateLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 10 {
		for _, layout := range []string{"2006-01-02", "2006/01/02"} {
			if t, err := time.Parse(layout, raw[:10]); err == nil {
				return t.Format("01/02")
			}
		}
	}
	return raw
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Run starts the TUI on the alternate screen.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
