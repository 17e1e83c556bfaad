// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package payloads

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// EntryItem is one stored entry in the list
type EntryItem struct {
	Entry   store.Entry
	Preview string
}

// FilterValue returns the value to filter against
func (i EntryItem) FilterValue() string {
	return i.Entry.Label + " " + i.Preview
}

// EntryDelegate renders an entry on a single line:
// color bar, type badge, label, preview and the time it arrived.
type EntryDelegate struct{}

// Render renders a single entry row
func (d EntryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(EntryItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(it, m.Width(), index == m.Index()))
}

func renderRow(it EntryItem, width int, selected bool) string {
	e := it.Entry

	cursor := "  "
	if selected {
		cursor = layout.HelpKeyStyle.Render("› ")
	}

	bar := " "
	if c, ok := layout.EntryColor(e.Color); ok {
		bar = lipgloss.NewStyle().Foreground(c).Render("▌")
	}

	// Type and label come from the client as-is
	label := oneLine(e.Label)
	badge := layout.BadgeStyle(classify.CategoryOf(e.Type)).Render(oneLine(e.Type.String()))
	when := layout.TimeStyle.Render(e.CreatedAt.Format("15:04:05"))

	left := cursor + bar + " " + badge + " "
	available := width - lipgloss.Width(left) - lipgloss.Width(when) - 1

	text := it.Preview
	if label != "" {
		text = label + ": " + text
	}
	text = ansi.Truncate(text, max(available, 0), "…")
	padding := max(available-ansi.StringWidth(text), 0)

	switch {
	case e.Hidden:
		text = layout.HiddenStyle.Render(text)
	case label != "" && strings.HasPrefix(text, label+":"):
		text = layout.LabelStyle.Render(label+":") + strings.TrimPrefix(text, label+":")
	}

	return left + text + strings.Repeat(" ", padding) + " " + when
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(classify.Sanitize(s)), " ")
}

// Height returns the height of the rendered item
func (d EntryDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items
func (d EntryDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate
func (d EntryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}
