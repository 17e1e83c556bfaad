// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package payloads

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Detail     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Screens    key.Binding
	Continue   key.Binding
	Clear      key.Binding
	Hidden     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll details up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll details down"),
		),
		Screens: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "screens"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue locks"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Hidden: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "show hidden"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is shown in the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Detail, k.Screens, k.Continue, k.Clear, k.Help, k.Quit}
}

// FullHelp is shown in place of the list when help is toggled on
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.ScrollUp, k.ScrollDown},
		{k.Screens, k.Hidden, k.Continue, k.Clear},
		{k.Help, k.Quit},
	}
}
