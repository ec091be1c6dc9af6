package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotsby/dotsby/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewPatterns
	viewLogbook
	viewSchedule
	viewBabies
)

var viewNames = []string{"Today", "Patterns", "Logbook", "Schedule", "Babies"}

// --- Messages ---

type tickMsg time.Time

// scheduleTickMsg drives the slow refresh of wake window math.
type scheduleTickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type babyChangedMsg struct {
	baby *store.Baby
}

type babiesLoadedMsg struct {
	babies   []store.Baby
	settings *store.AppSettings
}

type todayLoadedMsg struct {
	sleepMinutes int
	feedCount    int
	diapers      store.DiaperCounts
	pumpedOz     float64
	lastSleep    *store.SleepLog
	lastSide     string
}

type patternsLoadedMsg struct {
	days []store.DayActivity
}

type logbookLoadedMsg struct {
	entries []logEntry
}

type scheduleLoadedMsg struct {
	ageMonths    int
	lastWake     *time.Time
	sleeping     bool
	sleepMinutes int
	napsToday    int
}

type logSavedMsg struct {
	kind string
}

type exportDoneMsg struct {
	path string
}

type formDoneMsg struct{}
type formCancelMsg struct{}

// --- Helpers ---

func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func relTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm ago", int(d.Hours()), int(d.Minutes())%60)
	default:
		return t.Local().Format("Jan 2 15:04")
	}
}

func statusCmd(text string, isError bool) func() tea.Msg {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}
