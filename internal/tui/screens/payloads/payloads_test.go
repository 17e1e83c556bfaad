// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package payloads

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimBroddin/raybun/internal/protocol"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/highlight"
	"github.com/TimBroddin/raybun/internal/tui/messages"
	"github.com/TimBroddin/raybun/test/testutil"
)

func newModel(t *testing.T, st *store.Store) Model {
	t.Helper()
	m := NewModel(st, Options{Highlighter: highlight.New("", ""), ListenAddr: "127.0.0.1:23517"})
	m.SetSize(120, 30)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := testutil.SendMessage(m, msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func view(m Model) string {
	return ansi.Strip(m.View())
}

func TestEmptyHistory(t *testing.T) {
	m := newModel(t, testutil.NewStore(0))

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, view(m), "Waiting for payloads on http://127.0.0.1:23517")
	assert.Nil(t, m.Init())
}

func TestListsExistingEntries(t *testing.T) {
	st := testutil.NewStore(0)
	for _, req := range testutil.SampleRequests() {
		st.AddRequest(req)
	}
	st.AddRequest(testutil.LabelRequest("req-log", "Greeting"))
	m := newModel(t, st)

	out := view(m)
	assert.Contains(t, out, "Greeting: hello, 42")
	assert.Contains(t, out, "RuntimeException: Order not found")
	assert.Contains(t, out, "executed_query")
	assert.Contains(t, out, "7 shown")

	// The cursor starts on the newest entry.
	e, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, protocol.KindBool, e.Type)
}

func TestStoreChangeFollowsTail(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "first"))
	m := newModel(t, st)

	st.AddRequest(testutil.LogRequest("b", "second"))
	m, cmd := update(t, m, messages.StoreChangedMsg{})
	testutil.AssertNoCommand(t, cmd)

	e, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", e.UUID)
	assert.Contains(t, view(m), "second")
}

func TestStoreChangeKeepsCursorOnEntry(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "first"))
	st.AddRequest(testutil.LogRequest("b", "second"))
	m := newModel(t, st)

	m, _ = update(t, m, testutil.KeyPress("k"))
	e, _ := m.Selected()
	require.Equal(t, "a", e.UUID)

	st.AddRequest(testutil.LogRequest("c", "third"))
	m, _ = update(t, m, messages.StoreChangedMsg{})

	e, _ = m.Selected()
	assert.Equal(t, "a", e.UUID)
}

func TestHiddenToggle(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "shown"))
	st.AddRequest(testutil.LogRequest("b", "secret"))
	st.AddRequest(testutil.Request("b", testutil.Payload(protocol.KindHide, `{}`)))
	m := newModel(t, st)

	assert.NotContains(t, view(m), "secret")

	m, _ = update(t, m, testutil.KeyPress("H"))
	out := view(m)
	assert.Contains(t, out, "secret")
	assert.Contains(t, out, "hidden shown")
}

func TestAllHiddenMessage(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "secret"))
	st.AddRequest(testutil.Request("a", testutil.Payload(protocol.KindHide, `{}`)))
	m := newModel(t, st)

	assert.Contains(t, view(m), "All entries are hidden")
}

func TestScreenFilter(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "on default"))
	st.AddRequest(testutil.ScreenRequest("s", "debug"))
	st.AddRequest(testutil.LogRequest("b", "on debug"))
	m := newModel(t, st)

	m, cmd := update(t, m, testutil.KeyPress("s"))
	msg := testutil.ExecuteCommand(cmd)
	assert.Equal(t, messages.GoToScreenPickerMsg{Current: ""}, msg)

	m, _ = update(t, m, messages.ScreenSelectedMsg{Screen: "debug"})
	assert.Equal(t, "debug", m.ScreenFilter())
	out := view(m)
	assert.Contains(t, out, "on debug")
	assert.NotContains(t, out, "on default")

	_, cmd = update(t, m, testutil.KeyPress("s"))
	assert.Equal(t, messages.GoToScreenPickerMsg{Current: "debug"}, testutil.ExecuteCommand(cmd))

	m, _ = update(t, m, messages.ScreenSelectedMsg{Screen: "nowhere"})
	assert.Contains(t, view(m), "(screen nowhere)")
}

func TestContinueReleasesLocks(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.Request("a", testutil.Payload(protocol.KindLock, `{"name":"checkout"}`)))
	m := newModel(t, st)
	assert.Contains(t, view(m), "paused: checkout")

	m, _ = update(t, m, testutil.KeyPress("c"))
	assert.False(t, st.LockActive("checkout"))
	assert.NotContains(t, view(m), "paused:")
}

func TestClear(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.LogRequest("a", "first"))
	m := newModel(t, st)

	m, _ = update(t, m, testutil.KeyPress("x"))
	assert.Zero(t, st.Len())
	assert.Contains(t, view(m), "Waiting for payloads")
}

func TestDetailPane(t *testing.T) {
	st := testutil.NewStore(0)
	st.AddRequest(testutil.Request("q", testutil.Payload(protocol.KindQuery, `{"sql": "select * from orders", "connection_name": "mysql"}`)))
	m := newModel(t, st)

	assert.NotContains(t, view(m), "#1 executed_query")

	m, _ = update(t, m, testutil.SpecialKey(tea.KeyEnter))
	out := view(m)
	assert.Contains(t, out, "#1 executed_query")
	assert.Contains(t, out, "request: q")

	m, _ = update(t, m, testutil.SpecialKey(tea.KeyEnter))
	assert.NotContains(t, view(m), "#1 executed_query")
}

func TestHelpToggle(t *testing.T) {
	m := newModel(t, testutil.NewStore(0))

	m, _ = update(t, m, testutil.KeyPress("?"))
	out := view(m)
	assert.Contains(t, out, "continue locks")
	assert.Contains(t, out, "show hidden")

	m, _ = update(t, m, testutil.KeyPress("?"))
	assert.Contains(t, view(m), "Waiting for payloads")
}

func TestQuit(t *testing.T) {
	m := newModel(t, testutil.NewStore(0))

	_, cmd := update(t, m, testutil.KeyPress("q"))
	testutil.AssertQuitMessage(t, cmd)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	testutil.AssertQuitMessage(t, cmd)
}

func TestRenderRow(t *testing.T) {
	e := store.Entry{
		ID:        1,
		Type:      protocol.KindLog,
		Color:     "green",
		Label:     "Greeting",
		CreatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	row := ansi.Strip(renderRow(EntryItem{Entry: e, Preview: "hello there, this is a long preview"}, 60, true))

	assert.Equal(t, 60, ansi.StringWidth(row))
	assert.Contains(t, row, "› ▌")
	assert.Contains(t, row, " log ")
	assert.Contains(t, row, "Greeting: hello")
	assert.Contains(t, row, "…")
	assert.Contains(t, row, "15:04:05")

	e.Label = ""
	e.Color = ""
	row = ansi.Strip(renderRow(EntryItem{Entry: e, Preview: "short"}, 60, false))
	assert.Equal(t, 60, ansi.StringWidth(row))
	assert.NotContains(t, row, "▌")
	assert.NotContains(t, row, "…")
}

func TestRenderRowDropsClientControlSequences(t *testing.T) {
	e := store.Entry{
		ID:        1,
		Type:      protocol.Kind("evil\x1b[2J"),
		Label:     "line\none\x1b]0;title\a",
		CreatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	raw := renderRow(EntryItem{Entry: e, Preview: "ok"}, 60, false)

	assert.NotContains(t, raw, "\x1b[2J")
	assert.NotContains(t, raw, "\x1b]0;")
	assert.NotContains(t, raw, "\n")
	row := ansi.Strip(raw)
	assert.Contains(t, row, " evil ")
	assert.Contains(t, row, "line one: ok")
	assert.Equal(t, 60, ansi.StringWidth(row))
}
