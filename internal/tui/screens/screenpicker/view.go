// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package screenpicker

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// View renders the screen picker
func (m Model) View() string {
	content := lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.form.View())

	return layout.RenderLayout(layout.Body{Main: content}, m.GetLayoutInfo(), m.width, m.height)
}
