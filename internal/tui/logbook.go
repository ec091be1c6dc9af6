package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotsby/dotsby/internal/store"
	"github.com/dotsby/dotsby/internal/units"
)

// logEntry is one row in the unified logbook, regardless of which table
// it came from.
type logEntry struct {
	kind    string // "sleep", "feeding", "diaper", "pumping"
	id      string
	at      time.Time
	summary string
	open    bool // sleep session still in progress
}

type logbookModel struct {
	store  *store.Store
	width  int
	height int

	baby    *store.Baby
	metric  bool
	entries []logEntry
	cursor  int
	offset  int // weeks back from today (0 = current)
}

func newLogbookModel(s *store.Store) logbookModel {
	return logbookModel{store: s}
}

func (l *logbookModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l logbookModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := today.AddDate(0, 0, 1-7*l.offset)
	from := to.AddDate(0, 0, -7)
	return from, to
}

func (l logbookModel) refresh() tea.Cmd {
	if l.baby == nil {
		return nil
	}
	babyID := l.baby.ID
	metric := l.metric
	from, to := l.dateRange()
	return func() tea.Msg {
		var entries []logEntry

		sleeps, _ := l.store.GetSleepLogs(babyID, from, to)
		for _, s := range sleeps {
			e := logEntry{kind: "sleep", id: s.ID, at: s.StartTime, open: s.EndTime == nil}
			if s.EndTime != nil {
				mins := int(s.EndTime.Sub(s.StartTime).Minutes())
				e.summary = fmt.Sprintf("%s, %s", s.SleepType, formatMinutes(mins))
			} else {
				e.summary = fmt.Sprintf("%s, in progress", s.SleepType)
			}
			entries = append(entries, e)
		}

		feeds, _ := l.store.GetFeedingLogs(babyID, from, to)
		for _, f := range feeds {
			e := logEntry{kind: "feeding", id: f.ID, at: f.StartTime}
			switch {
			case f.FeedType == store.FeedBottle && f.AmountOz != nil:
				e.summary = fmt.Sprintf("bottle, %s", units.FormatVolume(*f.AmountOz, metric))
			case f.FeedType == store.FeedSolids && f.FoodName != nil:
				e.summary = fmt.Sprintf("solids, %s", *f.FoodName)
			case f.EndTime != nil:
				mins := int(f.EndTime.Sub(f.StartTime).Minutes())
				e.summary = fmt.Sprintf("%s, %s", f.FeedType, formatMinutes(mins))
			default:
				e.summary = string(f.FeedType)
			}
			entries = append(entries, e)
		}

		diapers, _ := l.store.GetDiaperLogs(babyID, from, to)
		for _, d := range diapers {
			entries = append(entries, logEntry{
				kind:    "diaper",
				id:      d.ID,
				at:      d.LoggedAt,
				summary: string(d.DiaperType),
			})
		}

		pumps, _ := l.store.GetPumpingLogs(babyID, from, to)
		for _, p := range pumps {
			entries = append(entries, logEntry{
				kind:    "pumping",
				id:      p.ID,
				at:      p.StartTime,
				summary: units.FormatVolume(p.OutputOz, metric),
			})
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].at.After(entries[j].at)
		})
		return logbookLoadedMsg{entries: entries}
	}
}

func (l logbookModel) update(msg tea.Msg) (logbookModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logbookLoadedMsg:
		l.entries = msg.entries
		if l.cursor >= len(l.entries) {
			l.cursor = max(0, len(l.entries)-1)
		}
		return l, nil

	case babyChangedMsg:
		l.baby = msg.baby
		l.cursor = 0
		l.offset = 0
		return l, l.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if l.cursor > 0 {
				l.cursor--
			}
		case key.Matches(msg, keys.Down):
			if l.cursor < len(l.entries)-1 {
				l.cursor++
			}
		case key.Matches(msg, keys.Left):
			l.offset++
			l.cursor = 0
			return l, l.refresh()
		case key.Matches(msg, keys.Right):
			if l.offset > 0 {
				l.offset--
				l.cursor = 0
			}
			return l, l.refresh()
		case key.Matches(msg, keys.Delete):
			return l.deleteSelected()
		}
	}
	return l, nil
}

func (l logbookModel) deleteSelected() (logbookModel, tea.Cmd) {
	if l.cursor >= len(l.entries) {
		return l, nil
	}
	e := l.entries[l.cursor]
	if e.open {
		// The open sleep row belongs to the running timer; stop it first.
		return l, statusCmd("Stop the sleep timer before deleting this entry", true)
	}

	var err error
	switch e.kind {
	case "sleep":
		err = l.store.DeleteSleepLog(e.id)
	case "feeding":
		err = l.store.DeleteFeedingLog(e.id)
	case "diaper":
		err = l.store.DeleteDiaperLog(e.id)
	case "pumping":
		err = l.store.DeletePumpingLog(e.id)
	}
	if err != nil {
		return l, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return l, tea.Batch(l.refresh(), statusCmd("Entry deleted", false))
}

func (l logbookModel) view() string {
	w := l.width - 4
	if l.baby == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("No baby selected. Press 5 to add one."))
	}

	from, to := l.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Logbook"), "  ", dateLabel,
	)

	if len(l.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			mutedStyle.Render("  No entries this week"),
			"",
			mutedStyle.Render("  ←/→: navigate weeks"),
		)
		return panelStyle.Width(w).Render(content)
	}

	visible := l.height - 10
	if visible < 5 {
		visible = 5
	}
	start := 0
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end := min(start+visible, len(l.entries))

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	lastDay := ""
	for i := start; i < end; i++ {
		e := l.entries[i]
		day := e.at.Local().Format("Mon Jan 02")
		if day != lastDay {
			rows = append(rows, accentStyle.Render("  "+day))
			lastDay = day
		}
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		icon := kindIcon(e.kind)
		row := style.Render(fmt.Sprintf("%s%s %s  %-8s %s",
			cursor, icon, e.at.Local().Format("15:04"), e.kind, e.summary))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: weeks  ↑/↓: move  x: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func kindIcon(kind string) string {
	switch kind {
	case "sleep":
		return accentStyle.Render("☾")
	case "feeding":
		return successStyle.Render("◉")
	case "diaper":
		return warningStyle.Render("◆")
	case "pumping":
		return highlightStyle.Render("▲")
	default:
		return " "
	}
}
