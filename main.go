package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotsby/dotsby/internal/store"
	"github.com/dotsby/dotsby/internal/timer"
	"github.com/dotsby/dotsby/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	statePath, err := timer.DefaultStatePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	timers, err := timer.Load(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading timer state: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s, timers)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
