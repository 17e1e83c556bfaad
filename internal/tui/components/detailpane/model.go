// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detailpane shows one stored entry in a scrollable card: the
// highlighted body followed by where it came from.
package detailpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/components/card"
	"github.com/TimBroddin/raybun/internal/tui/highlight"
	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// Model is the detail pane
type Model struct {
	viewport    viewport.Model
	highlighter highlight.Highlighter
	style       card.Style
	title       string
	entryID     uint64
	hasEntry    bool
	focused     bool
	width       int
	height      int
}

// New creates an empty detail pane
func New(h highlight.Highlighter) Model {
	return Model{
		viewport:    viewport.New(0, 0),
		highlighter: h,
		style:       card.DefaultStyle(),
	}
}

// SetEntry shows e. The scroll position is kept when e is the entry already
// shown, so refreshes do not jump back to the top.
func (m *Model) SetEntry(e store.Entry) {
	same := m.hasEntry && m.entryID == e.ID
	m.entryID = e.ID
	m.hasEntry = true
	m.title = fmt.Sprintf("#%d %s", e.ID, classify.Sanitize(e.Type.String()))
	if e.Label != "" {
		m.title += " · " + classify.Sanitize(e.Label)
	}
	m.title = strings.Join(strings.Fields(m.title), " ")
	m.style.Accent = nil
	if c, ok := layout.EntryColor(e.Color); ok {
		m.style.Accent = c
	}

	m.viewport.SetContent(m.wrap(Content(e, m.highlighter)))
	if !same {
		m.viewport.GotoTop()
	}
}

// Clear empties the pane
func (m *Model) Clear() {
	m.hasEntry = false
	m.entryID = 0
	m.title = ""
	m.style.Accent = nil
	m.viewport.SetContent("")
}

// EntryID returns the id of the shown entry
func (m Model) EntryID() (uint64, bool) {
	return m.entryID, m.hasEntry
}

// SetFocus sets the focus state of the pane
func (m *Model) SetFocus(focused bool) {
	m.focused = focused
}

// SetSize sets the outer size of the pane
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	fw, fh := m.style.FrameSize(true)
	m.viewport.Width = max(0, width-fw)
	m.viewport.Height = max(0, height-fh)
}

// Update forwards scroll keys to the viewport
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the pane
func (m Model) View() string {
	style := m.style
	if m.focused {
		style = style.Focused()
	}
	style.Width = m.width
	style.Height = m.height

	if !m.hasEntry {
		return card.Render("Details", layout.EmptyStyle.Render("Nothing selected"), style)
	}
	return card.Render(m.title, m.viewport.View(), style)
}

func (m Model) wrap(s string) string {
	if m.viewport.Width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.viewport.Width).Render(s)
}

// Content renders the text shown for e: body, then origin and meta.
func Content(e store.Entry, h highlight.Highlighter) string {
	var b strings.Builder

	b.WriteString(h.Render(classify.Body(e.Content)))
	b.WriteString("\n")

	section := func(title string, rows [][2]string) {
		rows = filterRows(rows)
		if len(rows) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(layout.LabelStyle.Render(title))
		b.WriteString("\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "  %s %s\n", layout.TimeStyle.Render(r[0]+":"), classify.Sanitize(r[1]))
		}
	}

	entryRows := [][2]string{
		{"request", e.UUID},
		{"screen", e.Screen},
		{"received", e.CreatedAt.Format("2006-01-02 15:04:05.000")},
		{"color", e.Color},
		{"size", e.Size},
	}
	if e.Hidden {
		entryRows = append(entryRows, [2]string{"hidden", "yes"})
	}
	section("Entry", entryRows)

	if o := e.Origin; o != nil {
		location := o.File
		if o.LineNumber > 0 {
			location = fmt.Sprintf("%s:%d", o.File, o.LineNumber)
		}
		section("Origin", [][2]string{
			{"file", location},
			{"function", o.FunctionName},
			{"host", o.Hostname},
		})
	}
	if mt := e.Meta; mt != nil {
		section("Meta", [][2]string{
			{"project", mt.ProjectName},
			{"php", mt.PHPVersion},
			{"laravel", mt.LaravelVersion},
			{"ray", mt.RayPackageVersion},
		})
	}

	return strings.TrimRight(b.String(), "\n")
}

func filterRows(rows [][2]string) [][2]string {
	out := rows[:0:0]
	for _, r := range rows {
		if r[1] != "" {
			out = append(out, r)
		}
	}
	return out
}
