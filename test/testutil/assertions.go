// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/TimBroddin/raybun/internal/store"
)

// AssertEntryIDs verifies the IDs of entries in order
func AssertEntryIDs(t *testing.T, entries []store.Entry, expected ...uint64) {
	t.Helper()
	actual := make([]uint64, len(entries))
	for i, e := range entries {
		actual[i] = e.ID
	}
	if expected == nil {
		expected = []uint64{}
	}
	assert.Equal(t, expected, actual, "Entry IDs mismatch")
}

// AssertNotified verifies the exact number of change signals captured
func AssertNotified(t *testing.T, capture *NotifyCapture, expected int) {
	t.Helper()
	assert.Equal(t, expected, capture.Count(), "Notification count mismatch")
}

// AssertNavigationMessage verifies that a message is of the expected navigation type
func AssertNavigationMessage(t *testing.T, msg tea.Msg, expectedType interface{}) {
	assert.IsType(t, expectedType, msg, "Navigation message type mismatch")
}

// AssertQuitMessage verifies that a quit message was generated
func AssertQuitMessage(t *testing.T, cmd tea.Cmd) {
	assert.NotNil(t, cmd, "Expected a command to be generated")
	msg := ExecuteCommand(cmd)
	assert.IsType(t, tea.QuitMsg{}, msg, "Expected quit message")
}

// AssertNoCommand verifies that no command was generated
func AssertNoCommand(t *testing.T, cmd tea.Cmd) {
	assert.Nil(t, cmd, "Expected no command to be generated")
}

// AssertViewNotEmpty verifies that the view produces non-empty output
func AssertViewNotEmpty(t *testing.T, model tea.Model) {
	view := model.View()
	assert.NotEmpty(t, view, "View should not be empty")
}
