package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/i18n"
	"github.com/jwulff/summit/internal/ui"
)

const (
	appName      = "Data Cloud Summit 24"
	sidebarWidth = 28
	detailHeight = 9
	minTitle     = 12
	minDesc      = 10
)

// fixed widths for the narrow columns: code, type, track, date, start, end
var fixedWidths = [...]int{8, 14, 18, 5, 5, 5}

// tableWidth is the room left of the sidebar.
func (m Model) tableWidth() int {
	if m.width == 0 {
		return 120
	}
	return max(m.width-sidebarWidth-3, 40)
}

func (m Model) columns() []table.Column {
	w := m.tableWidth()
	fixed := 0
	for _, n := range fixedWidths {
		fixed += n
	}
	// every cell carries one column of padding on each side
	rest := w - fixed - 2*8
	title := max(rest*45/100, minTitle)
	desc := max(rest-title, minDesc)

	l := m.labels
	return []table.Column{
		{Title: l.Label(i18n.Code), Width: fixedWidths[0]},
		{Title: l.Label(i18n.Title), Width: title},
		{Title: l.Label(i18n.SessionType), Width: fixedWidths[1]},
		{Title: l.Label(i18n.Track), Width: fixedWidths[2]},
		{Title: l.Label(i18n.Date), Width: fixedWidths[3]},
		{Title: l.Label(i18n.TimeFrom), Width: fixedWidths[4]},
		{Title: l.Label(i18n.TimeTo), Width: fixedWidths[5]},
		{Title: l.Label(i18n.Description), Width: desc},
	}
}

// resize fits the table to the window, leaving room for the header, the
// optional detail pane and the help line.
func (m *Model) resize() {
	m.table.SetColumns(m.columns())
	if m.height == 0 {
		return
	}
	h := m.height - 4 - lipgloss.Height(m.help.View(m.keys))
	if m.showDetail {
		h -= detailHeight
	}
	m.table.SetHeight(max(h, 5))
	m.table.SetWidth(m.tableWidth())
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	footer := m.help.View(m.keys)

	if m.loadErr != nil {
		body := ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.loadErr.Error())
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
	}
	if !m.loaded {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", ui.DimStyle.Render("Loading snapshot..."))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", m.renderMain())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	l := m.labels
	title := ui.TitleStyle.Render("❄ "+appName) + "  " + ui.SubtitleStyle.Render(l.Label(i18n.AppTitle))

	title += "  "
	if m.src != nil {
		title += ui.DimStyle.Render(l.Label(i18n.Snapshot)+": "+m.src.Label()) + " · "
	}
	title += ui.BadgeStyle.Render(l.Label(i18n.Language))

	caption := ui.CaptionStyle.Render(ansi.Truncate(l.Label(i18n.Caption), m.width, "…"))
	return lipgloss.JoinVertical(lipgloss.Left, title, caption)
}

func (m Model) renderSidebar() string {
	l := m.labels
	var b strings.Builder

	b.WriteString(ui.SectionStyle.Render(l.Label(i18n.Criteria)))
	b.WriteString("\n")
	for _, f := range []Focus{FocusTrack, FocusDate, FocusHour, FocusType} {
		field := selectorField[f]
		b.WriteString(m.renderSelector(l.FieldLabel(field), m.criteria.Selector(field), m.focus == f))
	}

	label := ui.LabelStyle
	if m.focus == FocusSearch {
		label = ui.LabelActiveStyle
	}
	b.WriteString(label.Render(l.Label(i18n.Search)))
	b.WriteString("\n")
	m.search.Width = sidebarWidth - 4
	b.WriteString(m.search.View())
	b.WriteString("\n")

	b.WriteString(ui.SectionStyle.Render(l.Label(i18n.Results)))
	b.WriteString("\n")
	b.WriteString(ui.CountStyle.Render(l.Count(len(m.result))))

	return ui.SidebarStyle.Width(sidebarWidth).Render(b.String())
}

func (m Model) renderSelector(label, value string, active bool) string {
	if value == "" {
		value = catalog.All
	}
	value = ansi.Truncate(value, sidebarWidth-6, "…")
	if active {
		return ui.LabelActiveStyle.Render(label) + "\n" +
			ui.SelectorActiveStyle.Render("‹ "+value+" ›") + "\n"
	}
	return ui.LabelStyle.Render(label) + "\n" +
		ui.SelectorStyle.Render("  "+value) + "\n"
}

func (m Model) renderMain() string {
	parts := []string{m.table.View()}
	if len(m.result) == 0 {
		parts = append(parts, ui.DimStyle.Render(m.labels.Label(i18n.NoResults)))
	}
	if m.showDetail {
		parts = append(parts, m.renderDetail())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderDetail() string {
	w := m.tableWidth() - 4
	s, ok := m.selected()
	if !ok {
		return ui.DetailStyle.Width(w).Render(ui.DimStyle.Render(m.labels.Label(i18n.NoResults)))
	}

	when := fmt.Sprintf("%s %s–%s", s.Date, catalog.ClockLabel(s.TimeFrom), catalog.ClockLabel(s.TimeTo))
	meta := strings.Join(nonEmpty(s.Code, s.SessionType, s.SessionTracks, when), " · ")

	var b strings.Builder
	b.WriteString(ui.SubtitleStyle.Render(s.Title))
	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render(meta))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(w - 2).MaxHeight(detailHeight - 5).Render(s.Description))
	if s.URL != "" {
		b.WriteString("\n")
		b.WriteString(ui.LinkStyle.Render(s.URL))
	}
	return ui.DetailStyle.Width(w).Render(b.String())
}

func nonEmpty(vals ...string) []string {
	out := vals[:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
