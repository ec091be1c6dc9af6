package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotsby/dotsby/internal/store"
	"github.com/dotsby/dotsby/internal/timer"
	"github.com/dotsby/dotsby/internal/units"
)

type todayModel struct {
	store  *store.Store
	ctrl   *timerController
	timers *timer.State
	width  int
	height int

	baby   *store.Baby
	metric bool
	now    time.Time

	sleepMinutes int
	feedCount    int
	diapers      store.DiaperCounts
	pumpedOz     float64
	lastSleep    *store.SleepLog
	lastSide     string

	formActive bool
	form       *huh.Form
	formType   string // "feed", "diaper", "pump_output"

	// Form field pointers (survive value copies)
	formFeedType *string
	formAmount   *string
	formContent  *string
	formFood     *string
	formDiaper   *string
}

func newTodayModel(s *store.Store, ctrl *timerController) todayModel {
	feedType, amount, content, food, diaper := "bottle", "", "formula", "", "wet"
	return todayModel{
		store:        s,
		ctrl:         ctrl,
		timers:       ctrl.timers,
		now:          time.Now(),
		formFeedType: &feedType,
		formAmount:   &amount,
		formContent:  &content,
		formFood:     &food,
		formDiaper:   &diaper,
	}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t todayModel) loadData() tea.Cmd {
	if t.baby == nil {
		return nil
	}
	babyID := t.baby.ID
	return func() tea.Msg {
		sleepMin, _ := t.store.TotalSleepToday(babyID)
		feeds, _ := t.store.TodayFeedCount(babyID)
		diapers, _ := t.store.GetTodayDiaperCounts(babyID)
		pumped, _ := t.store.GetTodayPumpingTotal(babyID)
		lastSleep, _ := t.store.GetLastSleepLog(babyID)
		lastSide, _ := t.store.GetLastNursingSide(babyID)

		return todayLoadedMsg{
			sleepMinutes: sleepMin,
			feedCount:    feeds,
			diapers:      diapers,
			pumpedOz:     pumped,
			lastSleep:    lastSleep,
			lastSide:     lastSide,
		}
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todayLoadedMsg:
		t.sleepMinutes = msg.sleepMinutes
		t.feedCount = msg.feedCount
		t.diapers = msg.diapers
		t.pumpedOz = msg.pumpedOz
		t.lastSleep = msg.lastSleep
		t.lastSide = msg.lastSide
		return t, nil

	case babyChangedMsg:
		t.baby = msg.baby
		return t, t.loadData()

	case tickMsg:
		t.now = time.Time(msg)
		return t, nil

	case tea.KeyMsg:
		if t.baby == nil {
			return t, nil
		}
		switch {
		case key.Matches(msg, keys.Sleep):
			return t.toggleSleep()
		case key.Matches(msg, keys.Nurse):
			return t.toggleNursing()
		case key.Matches(msg, keys.Switch):
			if t.timers.ActiveNursing() != nil {
				if err := t.timers.SwitchSide(); err != nil {
					return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
				}
			}
			return t, nil
		case key.Matches(msg, keys.Pump):
			return t.togglePumping()
		case key.Matches(msg, keys.Feed):
			return t.showFeedForm()
		case key.Matches(msg, keys.Diaper):
			return t.showDiaperForm()
		}
	}
	return t, nil
}

func (t todayModel) toggleSleep() (todayModel, tea.Cmd) {
	if t.timers.ActiveSleep() != nil {
		log, err := t.ctrl.stopSleep()
		if err != nil {
			return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		text := "Sleep timer cleared"
		if log != nil && log.EndTime != nil {
			mins := int(log.EndTime.Sub(log.StartTime).Minutes())
			text = fmt.Sprintf("Slept %s", formatMinutes(mins))
		}
		return t, tea.Batch(t.loadData(), statusCmd(text, false))
	}
	if err := t.ctrl.startSleep(t.baby.ID); err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return t, tea.Batch(t.loadData(), statusCmd("Sleep timer started", false))
}

func (t todayModel) toggleNursing() (todayModel, tea.Cmd) {
	if t.timers.ActiveNursing() != nil {
		log, err := t.ctrl.stopNursing()
		if err != nil {
			return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		text := "Nursing timer cleared"
		if log != nil && log.EndTime != nil {
			mins := int(log.EndTime.Sub(log.StartTime).Minutes())
			text = fmt.Sprintf("Nursed %s", formatMinutes(mins))
		}
		return t, tea.Batch(t.loadData(), statusCmd(text, false))
	}
	if err := t.ctrl.startNursing(t.baby.ID); err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return t, statusCmd("Nursing timer started", false)
}

func (t todayModel) togglePumping() (todayModel, tea.Cmd) {
	if t.timers.ActivePumping() != nil {
		// Ask for the output before finalizing; esc keeps the timer running.
		return t.showPumpOutputForm()
	}
	if err := t.ctrl.startPumping(t.baby.ID); err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return t, statusCmd("Pumping timer started", false)
}

// --- Forms ---

func validateVolume(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func (t todayModel) showFeedForm() (todayModel, tea.Cmd) {
	*t.formFeedType = "bottle"
	*t.formAmount = ""
	*t.formContent = "formula"
	*t.formFood = ""
	t.formType = "feed"

	unit := units.VolumeUnit(t.metric)
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Feed Type").
				Options(
					huh.NewOption("Bottle", "bottle"),
					huh.NewOption("Solids", "solids"),
				).Value(t.formFeedType),
			huh.NewInput().Title(fmt.Sprintf("Amount (%s)", unit)).
				Validate(validateVolume).Value(t.formAmount),
			huh.NewSelect[string]().Title("Contents").
				Options(
					huh.NewOption("Formula", "formula"),
					huh.NewOption("Breast milk", "breast_milk"),
					huh.NewOption("Food", "food"),
				).Value(t.formContent),
			huh.NewInput().Title("Food Name (solids only)").Value(t.formFood),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t todayModel) showDiaperForm() (todayModel, tea.Cmd) {
	*t.formDiaper = "wet"
	t.formType = "diaper"

	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Diaper Type").
				Options(
					huh.NewOption("Wet", "wet"),
					huh.NewOption("Dirty", "dirty"),
					huh.NewOption("Both", "both"),
				).Value(t.formDiaper),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t todayModel) showPumpOutputForm() (todayModel, tea.Cmd) {
	*t.formAmount = ""
	t.formType = "pump_output"

	unit := units.VolumeUnit(t.metric)
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Output (%s)", unit)).
				Validate(validateVolume).Value(t.formAmount),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		switch t.formType {
		case "feed":
			return t.submitFeed()
		case "diaper":
			return t.submitDiaper()
		case "pump_output":
			return t.submitPumpOutput()
		}
	}

	return t, cmd
}

func (t todayModel) submitFeed() (todayModel, tea.Cmd) {
	in := store.FeedingLogInsert{
		BabyID:    t.baby.ID,
		FeedType:  store.FeedType(*t.formFeedType),
		StartTime: time.Now(),
	}
	if *t.formAmount != "" {
		if v, err := strconv.ParseFloat(*t.formAmount, 64); err == nil {
			oz := units.ToStorage(v, t.metric)
			in.AmountOz = &oz
		}
	}
	content := store.ContentType(*t.formContent)
	in.ContentType = &content
	if in.FeedType == store.FeedSolids && *t.formFood != "" {
		in.FoodName = t.formFood
		food := store.ContentFood
		in.ContentType = &food
	}
	if _, err := t.store.InsertFeedingLog(in); err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return t, tea.Batch(t.loadData(), statusCmd("Feed logged", false))
}

func (t todayModel) submitDiaper() (todayModel, tea.Cmd) {
	_, err := t.store.InsertDiaperLog(store.DiaperLogInsert{
		BabyID:     t.baby.ID,
		LoggedAt:   time.Now(),
		DiaperType: store.DiaperType(*t.formDiaper),
	})
	if err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	return t, tea.Batch(t.loadData(), statusCmd("Diaper logged", false))
}

func (t todayModel) submitPumpOutput() (todayModel, tea.Cmd) {
	output := 0.0
	if v, err := strconv.ParseFloat(*t.formAmount, 64); err == nil {
		output = units.ToStorage(v, t.metric)
	}
	log, err := t.ctrl.stopPumping(output)
	if err != nil {
		return t, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	text := "Pumping timer cleared"
	if log != nil {
		text = fmt.Sprintf("Pumped %s", units.FormatVolume(log.OutputOz, t.metric))
	}
	return t, tea.Batch(t.loadData(), statusCmd(text, false))
}

// --- Rendering ---

func (t todayModel) view() string {
	if t.width < 20 {
		return "Terminal too small"
	}
	if t.baby == nil {
		return panelStyle.Width(t.width - 4).Render(
			mutedStyle.Render("No baby selected. Press 5 to add one."))
	}

	if t.formActive && t.form != nil {
		title := titleStyle.Render("Log Feed")
		switch t.formType {
		case "diaper":
			title = titleStyle.Render("Log Diaper")
		case "pump_output":
			title = titleStyle.Render("Pumping Output")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", t.form.View())
		return panelStyle.Width(t.width - 4).Render(content)
	}

	contentWidth := t.width - 4
	timerRow := t.renderTimerRow(contentWidth)
	statsPanel := t.renderStatsPanel(contentWidth)
	hints := footerStyle.Render("s: sleep  n: nurse  w: switch side  p: pump  f: feed  d: diaper")

	return lipgloss.JoinVertical(lipgloss.Left, timerRow, statsPanel, hints)
}

func (t todayModel) renderTimerRow(w int) string {
	panelWidth := w/3 - 2
	if panelWidth < 14 {
		panelWidth = 14
	}

	sleep := t.renderTimerPanel(panelWidth, "Sleep", t.timers.ActiveSleep(), "")
	var nursing string
	if n := t.timers.ActiveNursing(); n != nil {
		nursing = t.renderTimerPanel(panelWidth, "Nursing", &n.Slot, string(n.Side))
	} else {
		nursing = t.renderTimerPanel(panelWidth, "Nursing", nil, "")
	}
	pumping := t.renderTimerPanel(panelWidth, "Pumping", t.timers.ActivePumping(), "")

	return lipgloss.JoinHorizontal(lipgloss.Top, sleep, nursing, pumping)
}

func (t todayModel) renderTimerPanel(w int, name string, slot *timer.Slot, side string) string {
	title := titleStyle.Render(name)
	if slot == nil {
		content := lipgloss.JoinVertical(lipgloss.Center,
			title,
			timerStyle.Width(w-6).Render("--:--:--"),
			mutedStyle.Render("idle"),
		)
		return panelStyle.Width(w).Render(content)
	}

	elapsed := timer.ElapsedSeconds(slot.StartTime, t.now)
	indicator := successStyle.Render("● running")
	if side != "" {
		indicator = successStyle.Render("● " + side)
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		timerRunningStyle.Width(w-6).Render(formatClock(elapsed)),
		indicator,
	)
	return activePanelStyle.Width(w).Render(content)
}

func (t todayModel) renderStatsPanel(w int) string {
	title := titleStyle.Render(t.baby.Name + " — Today")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Sleep     %s", highlightStyle.Render(formatMinutes(t.sleepMinutes))))
	rows = append(rows, fmt.Sprintf("  Feeds     %s", highlightStyle.Render(strconv.Itoa(t.feedCount))))
	rows = append(rows, fmt.Sprintf("  Diapers   %s wet, %s dirty",
		highlightStyle.Render(strconv.Itoa(t.diapers.Wet)),
		highlightStyle.Render(strconv.Itoa(t.diapers.Dirty))))
	rows = append(rows, fmt.Sprintf("  Pumped    %s", highlightStyle.Render(units.FormatVolume(t.pumpedOz, t.metric))))

	if t.lastSleep != nil && t.lastSleep.EndTime != nil {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Last woke %s", relTime(*t.lastSleep.EndTime, t.now))))
	}
	if t.lastSide != "" {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Last nursed on the %s", t.lastSide)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
