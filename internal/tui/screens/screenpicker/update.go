// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package screenpicker

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/TimBroddin/raybun/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg {
				return messages.GoBackMsg{}
			}
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		screen := *m.selected
		return m, func() tea.Msg {
			return messages.ScreenSelectedMsg{Screen: screen}
		}
	case huh.StateAborted:
		return m, func() tea.Msg {
			return messages.GoBackMsg{}
		}
	}

	return m, cmd
}
