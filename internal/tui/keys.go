package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Sleep  key.Binding
	Nurse  key.Binding
	Switch key.Binding
	Pump   key.Binding
	Feed   key.Binding
	Diaper key.Binding
	New    key.Binding
	Delete key.Binding
	Export key.Binding
	Tab1   key.Binding
	Tab2   key.Binding
	Tab3   key.Binding
	Tab4   key.Binding
	Tab5   key.Binding
	Tab    key.Binding
	Help   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Sleep: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sleep timer"),
	),
	Nurse: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "nursing timer"),
	),
	Switch: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "switch side"),
	),
	Pump: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pumping timer"),
	),
	Feed: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "log feed"),
	),
	Diaper: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "log diaper"),
	),
	New: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add baby"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "today"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "patterns"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "logbook"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "schedule"),
	),
	Tab5: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "babies"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sleep, k.Nurse, k.Pump, k.Feed, k.Diaper, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sleep, k.Nurse, k.Switch, k.Pump},
		{k.Feed, k.Diaper, k.New, k.Delete, k.Export},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
