// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package payloads

import (
	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// View renders the payload list screen
func (m Model) View() string {
	body := layout.Body{DetailRatio: m.opts.DetailRatio}
	switch {
	case m.showHelp:
		body.Main = m.help.View(m.keys)
	case len(m.list.Items()) == 0:
		body.Main = m.renderEmpty()
	default:
		body.Main = m.list.View()
		body.Detail = m.detail.View()
		body.ShowDetail = m.showDetail
	}

	return layout.RenderLayout(body, m.GetLayoutInfo(), m.width, m.height)
}

func (m Model) renderEmpty() string {
	text := "Waiting for payloads"
	if m.opts.ListenAddr != "" {
		text += " on http://" + m.opts.ListenAddr
	}
	switch {
	case m.screenFilter != "":
		text += " (screen " + m.screenFilter + ")"
	case m.store.Len() > 0:
		text = "All entries are hidden. Press H to show them."
	}
	return layout.EmptyStyle.Render(text)
}
