// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package card

import (
	"github.com/charmbracelet/lipgloss"
)

// Style defines the visual appearance of a card
type Style struct {
	BorderColor lipgloss.TerminalColor
	BorderStyle lipgloss.Border
	TitleColor  lipgloss.TerminalColor
	// Accent, when set, is drawn as a bar left of the title (an entry's color)
	Accent  lipgloss.TerminalColor
	Padding [2]int // [vertical, horizontal]
	Width   int
	Height  int
}

// DefaultStyle returns the unfocused card style
func DefaultStyle() Style {
	return Style{
		BorderColor: lipgloss.Color("240"),
		BorderStyle: lipgloss.RoundedBorder(),
		TitleColor:  lipgloss.Color("86"),
		Padding:     [2]int{0, 1},
	}
}

// Focused returns s with the focused border
func (s Style) Focused() Style {
	s.BorderColor = lipgloss.Color("86")
	s.BorderStyle = lipgloss.ThickBorder()
	return s
}

// FrameSize returns the columns and lines taken by border, padding and the
// title block.
func (s Style) FrameSize(withTitle bool) (w, h int) {
	w = 2 + 2*s.Padding[1]
	h = 2 + 2*s.Padding[0]
	if withTitle {
		h += 2
	}
	return w, h
}

// Render creates a bordered card with an optional title. Width and Height,
// when set, are the outer size including the border.
func Render(title, content string, style Style) string {
	body := content
	if title != "" {
		titleRendered := lipgloss.NewStyle().
			Foreground(style.TitleColor).
			Bold(true).
			Render(title)
		if style.Accent != nil {
			titleRendered = lipgloss.NewStyle().Foreground(style.Accent).Render("▌") + " " + titleRendered
		}
		body = lipgloss.JoinVertical(lipgloss.Left, titleRendered, "", content)
	}

	box := lipgloss.NewStyle().
		Border(style.BorderStyle).
		BorderForeground(style.BorderColor).
		Padding(style.Padding[0], style.Padding[1])

	// lipgloss sizes exclude the border
	if style.Width > 2 {
		box = box.Width(style.Width - 2)
	}
	if style.Height > 2 {
		box = box.Height(style.Height - 2).MaxHeight(style.Height)
	}

	return box.Render(body)
}
