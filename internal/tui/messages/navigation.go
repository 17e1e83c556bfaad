// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package messages

// Navigation messages for screen transitions within the TUI
type GoBackMsg struct{}

// GoToScreenPickerMsg opens the screen filter picker. Current is the active
// filter, empty for all screens.
type GoToScreenPickerMsg struct {
	Current string
}

// ScreenSelectedMsg carries the picker's choice back to the payload list.
// An empty Screen shows every screen.
type ScreenSelectedMsg struct {
	Screen string
}

// StoreChangedMsg is sent after the payload history changed.
type StoreChangedMsg struct{}
