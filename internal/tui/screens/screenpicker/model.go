// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screenpicker lets the user limit the payload list to one screen.
package screenpicker

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// AllScreens is the option value that removes the filter
const AllScreens = ""

// Model is the model for the screen picker
type Model struct {
	form     *huh.Form
	screens  []string
	current  string // screen new entries currently land on
	selected *string
	width    int
	height   int
}

// NewModel builds the picker. screens are the screens present in the
// history, current is the store's current screen and filter the active
// filter, which starts out selected.
func NewModel(screens []string, current, filter string) Model {
	screens = slices.Clone(screens)
	if current != "" && !slices.Contains(screens, current) {
		screens = append(screens, current)
	}
	slices.Sort(screens)

	selected := filter
	m := Model{
		screens:  screens,
		current:  current,
		selected: &selected,
		width:    50,
		height:   10,
	}
	m.initForm()
	return m
}

func (m *Model) initForm() {
	options := []huh.Option[string]{huh.NewOption("All screens", AllScreens)}
	for _, s := range m.screens {
		name := s
		if s == m.current {
			name += " (current)"
		}
		options = append(options, huh.NewOption(name, s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("screen").
				Title("Show screen").
				Options(options...).
				Value(m.selected),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Screens returns the screens offered, without the "all" option
func (m Model) Screens() []string {
	return m.screens
}

// GetLayoutInfo returns layout information for the screen picker
func (m Model) GetLayoutInfo() layout.LayoutInfo {
	return layout.LayoutInfo{
		Title:       "raybun",
		Breadcrumbs: []string{"screens"},
		Status:      "Choose which screen to show",
		HelpItems: []layout.HelpItem{
			{Key: "↑/↓", Description: "navigate"},
			{Key: "enter", Description: "select"},
			{Key: "esc", Description: "cancel"},
		},
	}
}

// SetSize updates the model's dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	area := layout.ContentArea(m.GetLayoutInfo(), width, height)
	m.form = m.form.WithWidth(max(area.Width-4, 1)).WithHeight(max(area.Height-2, 1))
}
