// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package payloads

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/tui/messages"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := logger.GetTUILogger().With().Str("component", "payloads").Logger()

	switch msg := msg.(type) {
	case messages.StoreChangedMsg:
		m.refresh()
		return m, nil

	case messages.ScreenSelectedMsg:
		m.screenFilter = msg.Screen
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			m.detail.SetFocus(m.showDetail)
			m.SetSize(m.width, m.height)
			m.syncDetail()
			return m, nil

		case m.showDetail && (key.Matches(msg, m.keys.ScrollUp) || key.Matches(msg, m.keys.ScrollDown)):
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Screens):
			current := m.screenFilter
			return m, func() tea.Msg {
				return messages.GoToScreenPickerMsg{Current: current}
			}

		case key.Matches(msg, m.keys.Continue):
			n := m.store.ReleaseAllLocks()
			log.Info().Int("released", n).Msg("Continuing paused clients")
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.store.Clear()
			log.Info().Msg("History cleared")
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Hidden):
			m.showHidden = !m.showHidden
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.syncDetail()
	return m, cmd
}
