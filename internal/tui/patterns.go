package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotsby/dotsby/internal/pattern"
	"github.com/dotsby/dotsby/internal/store"
)

const patternWeeks = 12

type patternsModel struct {
	store  *store.Store
	width  int
	height int

	baby   *store.Baby
	days   []store.DayActivity
	offset int // 12-week blocks back from today (0 = current)
	dark   bool

	chart barchart.Model
}

func newPatternsModel(s *store.Store) patternsModel {
	return patternsModel{
		store: s,
		dark:  true,
		chart: barchart.New(60, 10),
	}
}

func (p *patternsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p patternsModel) refresh() tea.Cmd {
	if p.baby == nil {
		return nil
	}
	babyID := p.baby.ID
	from, to := p.dateRange()
	return func() tea.Msg {
		days, err := pattern.ActivityRange(p.store, babyID, from, to)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return patternsLoadedMsg{days: days}
	}
}

// dateRange covers patternWeeks whole weeks ending on today, aligned so
// the grid's last column is the current week.
func (p patternsModel) dateRange() (time.Time, time.Time) {
	// UTC day boundaries, matching how the store buckets logs by date.
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(today.Weekday()) // Sunday = 0, matching the grid rows
	weekStart := today.AddDate(0, 0, -weekday)
	to := weekStart.AddDate(0, 0, 6-7*p.offset*patternWeeks)
	from := weekStart.AddDate(0, 0, -7*(patternWeeks-1)-7*p.offset*patternWeeks)
	return from, to
}

func (p patternsModel) update(msg tea.Msg) (patternsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case patternsLoadedMsg:
		p.days = msg.days
		p.buildChart()
		return p, nil

	case babyChangedMsg:
		p.baby = msg.baby
		return p, p.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			p.offset++
			return p, p.refresh()
		case key.Matches(msg, keys.Right):
			if p.offset > 0 {
				p.offset--
			}
			return p, p.refresh()
		}
	}
	return p, nil
}

// buildChart plots the trailing seven days of sleep, in hours.
func (p *patternsModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	p.chart = barchart.New(chartWidth, 8)

	start := len(p.days) - 7
	if start < 0 {
		start = 0
	}
	var bars []barchart.BarData
	for _, d := range p.days[start:] {
		day, err := time.Parse("2006-01-02", d.Date)
		label := d.Date
		if err == nil {
			label = day.Format("Mon")
		}
		hours := float64(d.SleepMinutes) / 60
		style := lipgloss.NewStyle().Foreground(pattern.Color(d.Intensity, p.dark))
		if d.SleepMinutes == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: "sleep", Value: hours, Style: style}},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p patternsModel) view() string {
	w := p.width - 4
	if p.baby == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("No baby selected. Press 5 to add one."))
	}

	from, to := p.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Patterns"), "  ", dateLabel,
	)

	grid := p.renderGrid()
	legend := p.renderLegend()
	chartTitle := titleStyle.Render("Sleep, last 7 days (hours)")
	summary := p.renderSummary()
	nav := mutedStyle.Render("  ←/→: navigate")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", grid, "", legend, "", chartTitle, p.chart.View(), "", summary, "", nav,
		),
	)
}

// renderGrid draws the contribution-style grid: one column per week, one
// row per weekday, cells colored by that day's intensity.
func (p patternsModel) renderGrid() string {
	if len(p.days) == 0 {
		return mutedStyle.Render("  No data yet")
	}

	byDate := make(map[string]store.DayActivity, len(p.days))
	for _, d := range p.days {
		byDate[d.Date] = d
	}

	from, _ := p.dateRange()
	rowLabels := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

	var rows []string
	for dow := 0; dow < 7; dow++ {
		var b strings.Builder
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-4s", rowLabels[dow])))
		for week := 0; week < patternWeeks; week++ {
			day := from.AddDate(0, 0, week*7+dow)
			date := day.Format("2006-01-02")
			d, ok := byDate[date]
			cell := "  "
			if ok {
				cell = lipgloss.NewStyle().
					Foreground(pattern.Color(d.Intensity, p.dark)).
					Render("■ ")
			}
			b.WriteString(cell)
		}
		rows = append(rows, b.String())
	}

	return strings.Join(rows, "\n")
}

func (p patternsModel) renderLegend() string {
	var items []string
	items = append(items, mutedStyle.Render("  Less "))
	for i := 0; i <= 4; i++ {
		items = append(items, lipgloss.NewStyle().
			Foreground(pattern.Color(i, p.dark)).
			Render("■ "))
	}
	items = append(items, mutedStyle.Render(" More"))
	return strings.Join(items, "")
}

func (p patternsModel) renderSummary() string {
	var sleepMin, feeds, diapers, active int
	for _, d := range p.days {
		sleepMin += d.SleepMinutes
		feeds += d.FeedCount
		diapers += d.DiaperCount
		if d.Intensity > 0 {
			active++
		}
	}
	return mutedStyle.Render(fmt.Sprintf(
		"  %d days logged   sleep %s   %d feeds   %d diapers",
		active, formatMinutes(sleepMin), feeds, diapers,
	))
}
