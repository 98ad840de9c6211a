package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jwulff/summit/internal/app"
	"github.com/jwulff/summit/internal/catalog"
	"github.com/jwulff/summit/internal/i18n"
	"github.com/jwulff/summit/internal/source"
	"github.com/jwulff/summit/internal/ui"
)

var (
	searchTrack string
	searchDate  string
	searchHour  string
	searchType  string
	searchDates bool
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Filter sessions and print the result",
	Long: `Prints the sessions matching every given selector and, when a query is
given, containing it in the code, title, type, track or description.

Example:
  summit search --lang en --type Breakout iceberg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchTrack, "track", "", "exact track")
	f.StringVar(&searchDate, "date", "", "exact date, e.g. 2025-06-03")
	f.StringVar(&searchHour, "hour", "", "start hour bucket, e.g. 09時")
	f.StringVar(&searchType, "type", "", "exact session type")
	f.BoolVar(&searchDates, "search-date", false, "also match the query against the date")
	f.BoolVar(&searchJSON, "json", false, "print JSON")
}

func searchCriteria(cmd *cobra.Command, args []string) catalog.Criteria {
	crit := catalog.Unset()
	if len(args) > 0 {
		crit.Query = args[0]
	}
	crit.SearchDate = cfg.Search.IncludeDate
	if cmd.Flags().Changed("search-date") {
		crit.SearchDate = searchDates
	}
	for f, v := range map[catalog.Field]string{
		catalog.FieldTrack: searchTrack,
		catalog.FieldDate:  searchDate,
		catalog.FieldHour:  searchHour,
		catalog.FieldType:  searchType,
	} {
		if v != "" {
			crit = crit.WithSelector(f, v)
		}
	}
	return crit
}

func runSearch(cmd *cobra.Command, args []string) error {
	src, err := source.Open(cfg.Data)
	if err != nil {
		return err
	}
	lang := language()
	res, err := src.Catalog.Query(lang, searchCriteria(cmd, args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Snapshot string            `json:"snapshot"`
			Count    int               `json:"count"`
			Sessions []catalog.Session `json:"sessions"`
		}{src.Snapshot, res.Count, res.Sessions})
	}
	printSessions(out, i18n.For(lang), res.Sessions)
	return nil
}

func printSessions(w io.Writer, l *i18n.Translator, sessions []catalog.Session) {
	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		rows[i] = []string{
			s.Code,
			s.Title,
			s.SessionType,
			s.SessionTracks,
			app.DateLabel(s.Date),
			catalog.ClockLabel(s.TimeFrom),
			catalog.ClockLabel(s.TimeTo),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.DividerStyle).
		Headers(
			l.Label(i18n.Code),
			l.Label(i18n.Title),
			l.Label(i18n.SessionType),
			l.Label(i18n.Track),
			l.Label(i18n.Date),
			l.Label(i18n.TimeFrom),
			l.Label(i18n.TimeTo),
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.TitleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, ui.CountStyle.Render(l.Count(len(sessions))))
	if len(sessions) == 0 {
		fmt.Fprintln(w, ui.DimStyle.Render(l.Label(i18n.NoResults)))
	}
	fmt.Fprintln(w, ui.CaptionStyle.Render(strings.TrimSpace(l.Label(i18n.Caption))))
}
