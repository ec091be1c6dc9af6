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

	"github.com/dotsby/dotsby/internal/schedule"
	"github.com/dotsby/dotsby/internal/store"
)

type babiesModel struct {
	store  *store.Store
	width  int
	height int

	babies     []store.Baby
	selectedID string
	cursor     int

	formActive bool
	form       *huh.Form
	formType   string // "baby", "settings", "delete"

	// Form field pointers (survive value copies)
	formName    *string
	formBirth   *string
	formMetric  *bool
	formGoal    *string
	formConfirm *bool

	editingID string
}

func newBabiesModel(s *store.Store) babiesModel {
	name, birth, goal := "", "", ""
	metric, confirm := false, false
	return babiesModel{
		store:       s,
		formName:    &name,
		formBirth:   &birth,
		formMetric:  &metric,
		formGoal:    &goal,
		formConfirm: &confirm,
	}
}

func (b *babiesModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

func (b babiesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		babies, _ := b.store.GetAllBabies()
		settings, _ := b.store.GetAppSettings()
		return babiesLoadedMsg{babies: babies, settings: settings}
	}
}

func (b babiesModel) update(msg tea.Msg) (babiesModel, tea.Cmd) {
	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}

	switch msg := msg.(type) {
	case babiesLoadedMsg:
		b.babies = msg.babies
		if msg.settings != nil && msg.settings.SelectedBabyID != nil {
			b.selectedID = *msg.settings.SelectedBabyID
		}
		if b.cursor >= len(b.babies) {
			b.cursor = max(0, len(b.babies)-1)
		}
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
		case key.Matches(msg, keys.Down):
			if b.cursor < len(b.babies)-1 {
				b.cursor++
			}
		case key.Matches(msg, keys.Enter):
			return b.selectBaby()
		case key.Matches(msg, keys.New):
			return b.showBabyForm()
		case key.Matches(msg, keys.Sleep):
			// In this view "s" opens the per-baby settings form.
			return b.showSettingsForm()
		case key.Matches(msg, keys.Delete):
			return b.showDeleteForm()
		}
	}
	return b, nil
}

func (b babiesModel) selectBaby() (babiesModel, tea.Cmd) {
	if b.cursor >= len(b.babies) {
		return b, nil
	}
	baby := b.babies[b.cursor]
	if err := b.store.SetSelectedBaby(baby.ID); err != nil {
		return b, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	b.selectedID = baby.ID
	selected := baby
	return b, func() tea.Msg { return babyChangedMsg{baby: &selected} }
}

// --- Forms ---

func (b babiesModel) showBabyForm() (babiesModel, tea.Cmd) {
	*b.formName = ""
	*b.formBirth = ""
	b.formType = "baby"

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(b.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Birth Date (YYYY-MM-DD)").Value(b.formBirth).
				Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	b.formActive = true
	return b, b.form.Init()
}

func (b babiesModel) showSettingsForm() (babiesModel, tea.Cmd) {
	if b.cursor >= len(b.babies) {
		return b, nil
	}
	baby := b.babies[b.cursor]
	settings, err := b.store.GetBabySettings(baby.ID)
	if err != nil || settings == nil {
		return b, statusCmd("Could not load settings", true)
	}

	*b.formMetric = settings.UseMetricUnits
	*b.formGoal = ""
	if settings.DailyPumpingGoalOz != nil {
		*b.formGoal = strconv.FormatFloat(*settings.DailyPumpingGoalOz, 'f', -1, 64)
	}
	b.formType = "settings"
	b.editingID = baby.ID

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().Title("Units").
				Options(
					huh.NewOption("Ounces", false),
					huh.NewOption("Milliliters", true),
				).Value(b.formMetric),
			huh.NewInput().Title("Daily Pumping Goal (oz, blank for none)").
				Validate(validateVolume).Value(b.formGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	b.formActive = true
	return b, b.form.Init()
}

func (b babiesModel) showDeleteForm() (babiesModel, tea.Cmd) {
	if b.cursor >= len(b.babies) {
		return b, nil
	}
	baby := b.babies[b.cursor]
	*b.formConfirm = false
	b.formType = "delete"
	b.editingID = baby.ID

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s and all their logs?", baby.Name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(b.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	b.formActive = true
	return b, b.form.Init()
}

func (b babiesModel) updateForm(msg tea.Msg) (babiesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		switch b.formType {
		case "baby":
			return b.submitBaby()
		case "settings":
			return b.submitSettings()
		case "delete":
			return b.submitDelete()
		}
	}

	return b, cmd
}

func (b babiesModel) submitBaby() (babiesModel, tea.Cmd) {
	birth, err := time.ParseInLocation("2006-01-02", *b.formBirth, time.Local)
	if err != nil {
		return b, statusCmd("Invalid birth date", true)
	}
	baby, err := b.store.InsertBaby(strings.TrimSpace(*b.formName), birth, nil)
	if err != nil {
		return b, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}

	// First baby: select it and mark onboarding complete.
	cmds := []tea.Cmd{b.refresh(), statusCmd(baby.Name+" added", false)}
	if b.selectedID == "" {
		if err := b.store.SetSelectedBaby(baby.ID); err == nil {
			b.selectedID = baby.ID
			done := true
			b.store.UpdateAppSettings(store.AppSettingsUpdate{HasCompletedOnboarding: &done})
			selected := *baby
			cmds = append(cmds, func() tea.Msg { return babyChangedMsg{baby: &selected} })
		}
	}
	return b, tea.Batch(cmds...)
}

func (b babiesModel) submitSettings() (babiesModel, tea.Cmd) {
	u := store.BabySettingsUpdate{UseMetricUnits: b.formMetric}
	if *b.formGoal != "" {
		if v, err := strconv.ParseFloat(*b.formGoal, 64); err == nil {
			u.DailyPumpingGoalOz = &v
		}
	}
	if err := b.store.UpdateBabySettings(b.editingID, u); err != nil {
		return b, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}

	// Re-broadcast so views pick up the unit change.
	var cmds []tea.Cmd
	cmds = append(cmds, b.refresh(), statusCmd("Settings saved", false))
	if b.editingID == b.selectedID {
		if baby, err := b.store.GetBabyByID(b.editingID); err == nil && baby != nil {
			cmds = append(cmds, func() tea.Msg { return babyChangedMsg{baby: baby} })
		}
	}
	return b, tea.Batch(cmds...)
}

func (b babiesModel) submitDelete() (babiesModel, tea.Cmd) {
	if !*b.formConfirm {
		return b, nil
	}
	wasSelected := b.editingID == b.selectedID
	if err := b.store.DeleteBaby(b.editingID); err != nil {
		return b, statusCmd(fmt.Sprintf("Error: %v", err), true)
	}

	cmds := []tea.Cmd{statusCmd("Baby deleted", false)}
	if wasSelected {
		b.selectedID = ""
		// Fall back to the most recently added remaining baby.
		babies, _ := b.store.GetAllBabies()
		if len(babies) > 0 {
			next := babies[0]
			if err := b.store.SetSelectedBaby(next.ID); err == nil {
				b.selectedID = next.ID
			}
			cmds = append(cmds, func() tea.Msg { return babyChangedMsg{baby: &next} })
		} else {
			cmds = append(cmds, func() tea.Msg { return babyChangedMsg{baby: nil} })
		}
	}
	cmds = append(cmds, b.refresh())
	return b, tea.Batch(cmds...)
}

// --- Rendering ---

func (b babiesModel) view() string {
	w := b.width - 4

	if b.formActive && b.form != nil {
		title := titleStyle.Render("Add Baby")
		switch b.formType {
		case "settings":
			title = titleStyle.Render("Baby Settings")
		case "delete":
			title = titleStyle.Render("Delete Baby")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", b.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Babies")
	if len(b.babies) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No babies yet. Press a to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := time.Now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, baby := range b.babies {
		cursor := "  "
		style := normalItemStyle
		if i == b.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := "  "
		if baby.ID == b.selectedID {
			marker = successStyle.Render("● ")
		}
		age := schedule.AgeInMonths(baby.BirthDate, now)
		row := style.Render(fmt.Sprintf("%s%s%-20s", cursor, marker, baby.Name)) +
			mutedStyle.Render(fmt.Sprintf("%d months  born %s", age, baby.BirthDate.Local().Format("Jan 02, 2006")))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  a: add  s: settings  x: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func validateDate(s string) error {
	if _, err := time.ParseInLocation("2006-01-02", s, time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
