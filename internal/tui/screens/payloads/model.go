// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payloads is the main viewer screen: the list of received entries
// with an optional detail pane.
package payloads

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/TimBroddin/raybun/internal/classify"
	"github.com/TimBroddin/raybun/internal/store"
	"github.com/TimBroddin/raybun/internal/tui/components/detailpane"
	"github.com/TimBroddin/raybun/internal/tui/highlight"
	"github.com/TimBroddin/raybun/internal/tui/layout"
)

// Options configures the screen
type Options struct {
	PreviewLength int
	ShowHidden    bool
	DetailRatio   float64
	Highlighter   highlight.Highlighter
	// ListenAddr is shown while nothing has arrived yet
	ListenAddr string
}

// Model is the model for the payload list screen.
type Model struct {
	store  *store.Store
	opts   Options
	list   list.Model
	keys   keyMap
	help   help.Model
	detail detailpane.Model

	showDetail   bool
	showHidden   bool
	showHelp     bool
	screenFilter string // empty shows every screen

	width  int
	height int
}

// NewModel creates the screen and loads the current history
func NewModel(st *store.Store, opts Options) Model {
	if opts.PreviewLength <= 0 {
		opts.PreviewLength = classify.DefaultPreviewLength
	}

	l := list.New([]list.Item{}, EntryDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	m := Model{
		store:      st,
		opts:       opts,
		list:       l,
		keys:       defaultKeyMap(),
		help:       help.New(),
		detail:     detailpane.New(opts.Highlighter),
		showHidden: opts.ShowHidden,
		width:      80,
		height:     24,
	}
	m.SetSize(m.width, m.height)
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// GetLayoutInfo returns layout information for the payload list screen
func (m Model) GetLayoutInfo() layout.LayoutInfo {
	filter := m.screenFilter
	if filter == "" {
		filter = "all screens"
	}

	sum := m.store.Summary()
	status := []string{
		fmt.Sprintf("%d shown", len(m.list.Items())),
		fmt.Sprintf("%d stored", sum.Count),
		"current screen: " + sum.CurrentScreen,
	}
	if len(sum.Locks) > 0 {
		status = append(status, "paused: "+strings.Join(sum.Locks, ", "))
	}
	if m.showHidden {
		status = append(status, "hidden shown")
	}

	return layout.LayoutInfo{
		Title:       "raybun",
		Breadcrumbs: []string{filter},
		Status:      strings.Join(status, " | "),
		HelpItems:   layout.HelpItemsFromBindings(m.keys.ShortHelp()...),
	}
}

// SetSize updates the terminal dimensions for layout
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	area := layout.ContentArea(m.GetLayoutInfo(), width, height)
	listArea, detailArea := area.Panes(m.showDetail, m.opts.DetailRatio)
	if detailArea.Width > 0 {
		m.detail.SetSize(detailArea.Width, detailArea.Height)
	}
	m.list.SetSize(listArea.Width, listArea.Height)
	m.help.Width = area.Width
	m.syncDetail()
}

// ScreenFilter returns the screen the list is limited to, or "" for all
func (m Model) ScreenFilter() string {
	return m.screenFilter
}

// Selected returns the entry under the cursor
func (m Model) Selected() (store.Entry, bool) {
	it, ok := m.list.SelectedItem().(EntryItem)
	if !ok {
		return store.Entry{}, false
	}
	return it.Entry, true
}

// entries reads the history through the current filters
func (m Model) entries() []store.Entry {
	var entries []store.Entry
	switch {
	case m.showHidden:
		entries = m.store.All()
	case m.screenFilter != "":
		return m.store.VisibleOnScreen(m.screenFilter)
	default:
		return m.store.Visible()
	}
	if m.screenFilter == "" {
		return entries
	}
	return lo.Filter(entries, func(e store.Entry, _ int) bool { return e.Screen == m.screenFilter })
}

// refresh reloads the list. The cursor stays on the same entry; when it was
// on the last row it follows new arrivals.
func (m *Model) refresh() {
	prev, hadPrev := m.Selected()
	follow := !hadPrev || m.list.Index() == len(m.list.Items())-1

	entries := m.entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, EntryItem{Entry: e, Preview: classify.Preview(e.Content, m.opts.PreviewLength)})
	}
	m.list.SetItems(items)

	idx := len(items) - 1
	if !follow {
		if i := lo.IndexOf(lo.Map(entries, func(e store.Entry, _ int) uint64 { return e.ID }), prev.ID); i >= 0 {
			idx = i
		}
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.syncDetail()
}

// syncDetail points the detail pane at the selected entry
func (m *Model) syncDetail() {
	if !m.showDetail {
		return
	}
	if e, ok := m.Selected(); ok {
		m.detail.SetEntry(e)
		return
	}
	m.detail.Clear()
}
