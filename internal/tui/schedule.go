package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotsby/dotsby/internal/schedule"
	"github.com/dotsby/dotsby/internal/store"
)

type scheduleModel struct {
	store  *store.Store
	width  int
	height int

	baby *store.Baby
	now  time.Time

	ageMonths    int
	lastWake     *time.Time
	sleeping     bool
	sleepMinutes int
	napsToday    int
}

func newScheduleModel(s *store.Store) scheduleModel {
	return scheduleModel{store: s, now: time.Now()}
}

func (m *scheduleModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m scheduleModel) refresh() tea.Cmd {
	if m.baby == nil {
		return nil
	}
	baby := *m.baby
	return func() tea.Msg {
		now := time.Now()
		age := schedule.AgeInMonths(baby.BirthDate, now)

		last, _ := m.store.GetLastSleepLog(baby.ID)
		var lastWake *time.Time
		sleeping := false
		if last != nil {
			if last.EndTime == nil {
				sleeping = true
			} else {
				lastWake = last.EndTime
			}
		}

		sleepMin, _ := m.store.TotalSleepToday(baby.ID)
		naps := 0
		todaySleeps, _ := m.store.GetTodaySleepLogs(baby.ID)
		for _, s := range todaySleeps {
			if s.SleepType == store.SleepNap {
				naps++
			}
		}

		return scheduleLoadedMsg{
			ageMonths:    age,
			lastWake:     lastWake,
			sleeping:     sleeping,
			sleepMinutes: sleepMin,
			napsToday:    naps,
		}
	}
}

func (m scheduleModel) update(msg tea.Msg) (scheduleModel, tea.Cmd) {
	switch msg := msg.(type) {
	case scheduleLoadedMsg:
		m.ageMonths = msg.ageMonths
		m.lastWake = msg.lastWake
		m.sleeping = msg.sleeping
		m.sleepMinutes = msg.sleepMinutes
		m.napsToday = msg.napsToday
		return m, nil

	case babyChangedMsg:
		m.baby = msg.baby
		return m, m.refresh()

	case tickMsg:
		m.now = time.Time(msg)
		return m, nil

	case scheduleTickMsg:
		// Wake window math drifts a minute at a time; reload on the slow tick.
		return m, m.refresh()
	}
	return m, nil
}

func (m scheduleModel) view() string {
	w := m.width - 4
	if m.baby == nil {
		return panelStyle.Width(w).Render(
			mutedStyle.Render("No baby selected. Press 5 to add one."))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Schedule"), "  ",
		mutedStyle.Render(fmt.Sprintf("%s, %d months", m.baby.Name, m.ageMonths)),
	)

	wakeCard := m.renderWakeWindowCard(w)
	targetsCard := m.renderTargetsCard(w)

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(header),
		wakeCard,
		targetsCard,
	)
}

func (m scheduleModel) renderWakeWindowCard(w int) string {
	title := titleStyle.Render("Wake Window")

	if m.sleeping {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			accentStyle.Render("  ☾ Asleep now"),
		)
		return panelStyle.Width(w).Render(content)
	}
	if m.lastWake == nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("  No sleep logged yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	ww := schedule.WakeWindowProgress(*m.lastWake, m.ageMonths, m.now)
	status := schedule.FormatWakeWindowStatus(*m.lastWake, m.ageMonths, m.now)
	next := schedule.NextNapTime(*m.lastWake, m.ageMonths)

	barWidth := w - 12
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(ww.Progress * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	barStyle := successStyle
	statusStyle := mutedStyle
	if ww.IsOverdue {
		barStyle = errorStyle
		statusStyle = errorStyle
	} else if ww.Progress > 0.75 {
		barStyle = warningStyle
		statusStyle = warningStyle
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Awake %s", highlightStyle.Render(formatMinutes(ww.MinutesAwake))))
	rows = append(rows, "  "+barStyle.Render(bar))
	rows = append(rows, "  "+statusStyle.Render(status))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Next nap around %s", next.Local().Format("15:04"))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m scheduleModel) renderTargetsCard(w int) string {
	t := schedule.Targets(m.ageMonths)
	title := titleStyle.Render("Daily Targets")

	todaySleep := float64(m.sleepMinutes) / 60
	sleepLine := fmt.Sprintf("  Total sleep  %s of %s",
		highlightStyle.Render(fmt.Sprintf("%.1fh", todaySleep)),
		mutedStyle.Render(formatRangeHours(t.TotalHours)))
	napLine := fmt.Sprintf("  Naps         %s of %s",
		highlightStyle.Render(fmt.Sprintf("%d", m.napsToday)),
		mutedStyle.Render(formatRangeCount(t.Naps)))
	wakeLine := fmt.Sprintf("  Wake window  %s", mutedStyle.Render(formatRangeMinutes(t.WakeWindow)))
	nightLine := fmt.Sprintf("  Night sleep  %s", mutedStyle.Render(formatRangeHours(t.NightSleep)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "", sleepLine, napLine, wakeLine, nightLine,
	)
	return panelStyle.Width(w).Render(content)
}

func formatRangeHours(r schedule.Range) string {
	if r.Min == r.Max {
		return fmt.Sprintf("%gh", r.Min)
	}
	return fmt.Sprintf("%g-%gh", r.Min, r.Max)
}

func formatRangeCount(r schedule.Range) string {
	if r.Min == r.Max {
		return fmt.Sprintf("%g", r.Min)
	}
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

func formatRangeMinutes(r schedule.Range) string {
	return fmt.Sprintf("%s to %s", formatMinutes(int(r.Min)), formatMinutes(int(r.Max)))
}
