package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotsby/dotsby/internal/export"
	"github.com/dotsby/dotsby/internal/store"
	"github.com/dotsby/dotsby/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	timers *timer.State
	ctrl   *timerController
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	selectedBaby *store.Baby

	today    todayModel
	patterns patternsModel
	logbook  logbookModel
	schedule scheduleModel
	babies   babiesModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, timers *timer.State) App {
	h := help.New()
	h.ShowAll = false

	ctrl := &timerController{store: s, timers: timers}

	return App{
		store:      s,
		timers:     timers,
		ctrl:       ctrl,
		activeView: viewToday,
		today:      newTodayModel(s, ctrl),
		patterns:   newPatternsModel(s),
		logbook:    newLogbookModel(s),
		schedule:   newScheduleModel(s),
		babies:     newBabiesModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.loadSelectedBaby(),
		a.babies.refresh(),
		tickCmd(),
		scheduleTickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func scheduleTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return scheduleTickMsg(t)
	})
}

// loadSelectedBaby resolves the selected baby at startup, falling back to
// the most recently added one, and drops any timer whose database row has
// gone missing.
func (a App) loadSelectedBaby() tea.Cmd {
	return func() tea.Msg {
		if err := a.ctrl.reconcile(); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		settings, err := a.store.GetAppSettings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		if settings != nil && settings.SelectedBabyID != nil {
			baby, err := a.store.GetBabyByID(*settings.SelectedBabyID)
			if err == nil && baby != nil {
				return babyChangedMsg{baby: baby}
			}
		}
		babies, err := a.store.GetAllBabies()
		if err != nil || len(babies) == 0 {
			return babyChangedMsg{baby: nil}
		}
		baby := babies[0]
		a.store.SetSelectedBaby(baby.ID)
		return babyChangedMsg{baby: &baby}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.patterns.setSize(a.width, contentHeight)
		a.logbook.setSize(a.width, contentHeight)
		a.schedule.setSize(a.width, contentHeight)
		a.babies.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			if a.selectedBaby == nil {
				return a, nil
			}
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewToday
			return a, a.today.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPatterns
			return a, a.patterns.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewLogbook
			return a, a.logbook.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSchedule
			return a, a.schedule.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewBabies
			return a, a.babies.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.schedule, cmd = a.schedule.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case scheduleTickMsg:
		cmds = append(cmds, scheduleTickCmd())
		var cmd tea.Cmd
		a.schedule, cmd = a.schedule.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case babyChangedMsg:
		return a.applyBabyChange(msg)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// applyBabyChange broadcasts the new selection to every view so they all
// reload against the right baby.
func (a App) applyBabyChange(msg babyChangedMsg) (tea.Model, tea.Cmd) {
	a.selectedBaby = msg.baby

	metric := false
	if msg.baby != nil {
		if settings, err := a.store.GetBabySettings(msg.baby.ID); err == nil && settings != nil {
			metric = settings.UseMetricUnits
		}
	}
	a.today.metric = metric
	a.logbook.metric = metric

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.today, cmd = a.today.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.patterns, cmd = a.patterns.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.logbook, cmd = a.logbook.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.schedule, cmd = a.schedule.update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewPatterns:
		a.patterns, cmd = a.patterns.update(msg)
	case viewLogbook:
		a.logbook, cmd = a.logbook.update(msg)
	case viewSchedule:
		a.schedule, cmd = a.schedule.update(msg)
	case viewBabies:
		a.babies, cmd = a.babies.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewBabies:
		return a.babies.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.loadData()
	case viewPatterns:
		return a.patterns.refresh()
	case viewLogbook:
		return a.logbook.refresh()
	case viewSchedule:
		return a.schedule.refresh()
	case viewBabies:
		return a.babies.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewPatterns:
		content = a.patterns.view()
	case viewLogbook:
		content = a.logbook.view()
	case viewSchedule:
		content = a.schedule.view()
	case viewBabies:
		content = a.babies.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("dotsby")
	if a.selectedBaby != nil {
		title += mutedStyle.Render(" · " + a.selectedBaby.Name)
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Running timer indicators
	now := time.Now()
	var indicators []string
	if s := a.timers.ActiveSleep(); s != nil {
		indicators = append(indicators, accentStyle.Render("☾ "+formatClock(timer.ElapsedSeconds(s.StartTime, now))))
	}
	if n := a.timers.ActiveNursing(); n != nil {
		indicators = append(indicators, successStyle.Render("◉ "+formatClock(timer.ElapsedSeconds(n.StartTime, now))))
	}
	if p := a.timers.ActivePumping(); p != nil {
		indicators = append(indicators, highlightStyle.Render("▲ "+formatClock(timer.ElapsedSeconds(p.StartTime, now))))
	}
	timerInfo := ""
	if len(indicators) > 0 {
		timerInfo = " " + strings.Join(indicators, " ")
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	baby := a.selectedBaby
	return func() tea.Msg {
		if baby == nil {
			return statusMsg{text: "No baby selected", isError: true}
		}

		// Everything from birth through tomorrow.
		from := baby.BirthDate.AddDate(0, 0, -1)
		to := time.Now().AddDate(0, 0, 1)

		logs := export.Logs{Baby: baby}
		var err error
		if logs.Sleep, err = a.store.GetSleepLogs(baby.ID, from, to); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		if logs.Feeding, err = a.store.GetFeedingLogs(baby.ID, from, to); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		if logs.Diapers, err = a.store.GetDiaperLogs(baby.ID, from, to); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		if logs.Pumping, err = a.store.GetPumpingLogs(baby.ID, from, to); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")
		slug := strings.ToLower(strings.ReplaceAll(baby.Name, " ", "-"))

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("dotsby-%s-%s.csv", slug, dateStr))
			if err := export.ToCSV(logs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("dotsby-%s-%s.json", slug, dateStr))
			if err := export.ToJSON(logs, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
