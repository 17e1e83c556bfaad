// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package screenpicker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/TimBroddin/raybun/internal/tui/messages"
	"github.com/TimBroddin/raybun/test/testutil"
)

func TestNewModel(t *testing.T) {
	m := NewModel([]string{"debug", "default"}, "orders", "debug")

	assert.Equal(t, []string{"debug", "default", "orders"}, m.Screens())
	assert.Equal(t, "debug", *m.selected)
	assert.NotNil(t, m.form)
}

func TestNewModelDoesNotDuplicateCurrent(t *testing.T) {
	m := NewModel([]string{"default"}, "default", "")
	assert.Equal(t, []string{"default"}, m.Screens())
}

func TestView(t *testing.T) {
	m := NewModel([]string{"debug", "default"}, "default", "")
	m.SetSize(80, 24)
	m.Init()

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Show screen")
	assert.Contains(t, out, "All screens")
	assert.Contains(t, out, "default (current)")
}

func TestEscapeGoesBack(t *testing.T) {
	m := NewModel([]string{"default"}, "default", "")

	_, cmd := testutil.SendMessage(m, testutil.SpecialKey(tea.KeyEsc))
	testutil.AssertNavigationMessage(t, testutil.ExecuteCommand(cmd), messages.GoBackMsg{})
}

func TestCtrlCQuits(t *testing.T) {
	m := NewModel([]string{"default"}, "default", "")

	_, cmd := testutil.SendMessage(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	testutil.AssertQuitMessage(t, cmd)
}

func TestCompletionSendsSelection(t *testing.T) {
	m := NewModel([]string{"debug", "default"}, "default", "")

	// Simulate the user picking "debug" and submitting
	*m.selected = "debug"
	m.form.State = huh.StateCompleted

	_, cmd := testutil.SendMessage(m, testutil.SpecialKey(tea.KeyEnter))
	assert.Equal(t, messages.ScreenSelectedMsg{Screen: "debug"}, testutil.ExecuteCommand(cmd))
}

func TestCompletionWithAllScreens(t *testing.T) {
	m := NewModel([]string{"debug"}, "debug", "debug")

	*m.selected = AllScreens
	m.form.State = huh.StateCompleted

	_, cmd := testutil.SendMessage(m, testutil.SpecialKey(tea.KeyEnter))
	assert.Equal(t, messages.ScreenSelectedMsg{Screen: ""}, testutil.ExecuteCommand(cmd))
}
