// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TimBroddin/raybun/internal/logger"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/messages"
	"github.com/TimBroddin/raybun/internal/tui/screens/payloads"
	"github.com/TimBroddin/raybun/internal/tui/screens/screenpicker"
)

// ScreenType represents the current active screen
type ScreenType int

const (
	PayloadsScreen ScreenType = iota
	ScreenPickerScreen
)

type MainModel struct {
	// Current screen state
	currentScreen ScreenType
	// Screen history for back navigation
	screenHistory []ScreenType

	payloads     payloads.Model
	screenPicker screenpicker.Model

	width, height int
	store         *store.Store
}

// NewMainModel creates a MainModel with the payload list as the initial screen
func NewMainModel(st *store.Store, opts payloads.Options) MainModel {
	return MainModel{
		currentScreen: PayloadsScreen,
		screenHistory: []ScreenType{},
		payloads:      payloads.NewModel(st, opts),
		store:         st,
	}
}

func (m MainModel) Init() tea.Cmd {
	return m.payloads.Init()
}

// setSize updates the size for the current screen
func (m *MainModel) setSize(width, height int) {
	m.width = width
	m.height = height
	switch m.currentScreen {
	case PayloadsScreen:
		m.payloads.SetSize(width, height)
	case ScreenPickerScreen:
		m.screenPicker.SetSize(width, height)
	}
}

func (m *MainModel) goBack() {
	if len(m.screenHistory) > 0 {
		m.currentScreen = m.screenHistory[len(m.screenHistory)-1]
		m.screenHistory = m.screenHistory[:len(m.screenHistory)-1]
		m.setSize(m.width, m.height) // Refresh size for the screen we're going back to
	}
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := logger.GetTUILogger().With().Str("component", "main_model").Logger()

	if windowSize, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(windowSize.Width, windowSize.Height)
		return m, nil
	}

	// Navigation messages return early to avoid screen delegation
	switch msg := msg.(type) {
	case messages.GoToScreenPickerMsg:
		m.screenHistory = append(m.screenHistory, m.currentScreen)
		m.screenPicker = screenpicker.NewModel(m.store.Screens(), m.store.CurrentScreen(), msg.Current)
		m.currentScreen = ScreenPickerScreen
		m.screenPicker.SetSize(m.width, m.height)
		return m, m.screenPicker.Init()

	case messages.GoBackMsg:
		m.goBack()
		return m, nil

	case messages.ScreenSelectedMsg:
		log.Debug().Str("screen", msg.Screen).Msg("Screen filter selected")
		m.goBack()
		model, cmd := m.payloads.Update(msg)
		m.payloads = model.(payloads.Model)
		return m, cmd

	case messages.StoreChangedMsg:
		// The list stays current even while another screen is open
		model, cmd := m.payloads.Update(msg)
		m.payloads = model.(payloads.Model)
		return m, cmd
	}

	var screenCmd tea.Cmd
	switch m.currentScreen {
	case PayloadsScreen:
		var model tea.Model
		model, screenCmd = m.payloads.Update(msg)
		m.payloads = model.(payloads.Model)
	case ScreenPickerScreen:
		var model tea.Model
		model, screenCmd = m.screenPicker.Update(msg)
		m.screenPicker = model.(screenpicker.Model)
	}

	return m, screenCmd
}

func (m MainModel) View() string {
	switch m.currentScreen {
	case PayloadsScreen:
		return m.payloads.View()
	case ScreenPickerScreen:
		return m.screenPicker.View()
	default:
		return "Unknown screen"
	}
}

// CurrentScreen returns the active screen
func (m MainModel) CurrentScreen() ScreenType {
	return m.currentScreen
}
