package app

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kyaoi/wikiview/internal/config"
	"github.com/kyaoi/wikiview/internal/ui"
)

// Run executes the Bubble Tea program for the wiki viewer.
func Run(cfg *config.Config) error {
	state, cleanup, err := LoadInitialState(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return runProgram(state)
}

func runProgram(state ui.State) error {
	manager := zone.New()
	defer manager.Close()
	state.Zone = manager

	program := tea.NewProgram(ui.NewModel(state), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
