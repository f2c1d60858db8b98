// Package tui is the interactive dashboard: a tabbed terminal UI over the
// central state container, backed by the sqlite store.
package tui

import (
	"context"

	"ledgerdesk/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store) error {
	applyColorProfilePreference()

	snap, err := s.LoadAll(context.Background())
	if err != nil {
		return err
	}

	m := newAppModel(s, snap)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
