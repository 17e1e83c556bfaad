// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	// MinimumWidth fits a type badge, a short preview and the time column.
	// Below it the breadcrumbs are dropped and the detail pane is not shown.
	MinimumWidth = 40
	// MinimumHeight keeps the full header and footer. Below it only the
	// title line stays so the list keeps as many rows as possible.
	MinimumHeight = 10
)

// LayoutInfo describes the chrome around a screen's content: the title line,
// the screen breadcrumbs, a status line and the footer help.
type LayoutInfo struct {
	Title       string
	Breadcrumbs []string
	Status      string
	HelpItems   []HelpItem
}

// Area is the space a screen gets between header and footer.
type Area struct {
	Width  int
	Height int
}

// Body is what a screen renders into its Area. Detail is drawn to the right
// of Main when ShowDetail is set and the terminal is wide enough.
type Body struct {
	Main        string
	Detail      string
	ShowDetail  bool
	DetailRatio float64
}

// Panes splits a into the list and detail areas. The detail area is zero
// when showDetail is false or a is too narrow to split.
func (a Area) Panes(showDetail bool, ratio float64) (main, detail Area) {
	if !showDetail || a.Width < MinimumWidth {
		return a, Area{}
	}
	left, right := splitWidths(a.Width, ratio)
	return Area{Width: left, Height: a.Height}, Area{Width: right, Height: a.Height}
}

// chrome renders the header and footer for the terminal size. Small
// terminals get a compact header and no footer instead of an error screen.
func chrome(info LayoutInfo, width, height int) (header, footer string) {
	breadcrumbs, status := info.Breadcrumbs, info.Status
	if width < MinimumWidth {
		breadcrumbs = nil
	}
	if height < MinimumHeight {
		status = ""
	}
	header = RenderHeader(info.Title, breadcrumbs, status, width)
	if height >= MinimumHeight {
		footer = RenderFooter(info.HelpItems, width)
	}
	return header, footer
}

// ContentArea returns the Area left for content once the chrome is drawn.
func ContentArea(info LayoutInfo, width, height int) Area {
	header, footer := chrome(info, width, height)
	return Area{
		Width:  max(width, 1),
		Height: max(height-lipgloss.Height(header)-chromeHeight(footer), 1),
	}
}

// RenderLayout draws header, body and footer filling exactly width x height.
func RenderLayout(body Body, info LayoutInfo, width, height int) string {
	header, footer := chrome(info, width, height)
	area := ContentArea(info, width, height)

	content := body.Main
	if main, detail := area.Panes(body.ShowDetail, body.DetailRatio); detail.Width > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			clip(body.Main, main),
			clip(body.Detail, detail))
	}

	parts := []string{header, clip(content, area)}
	if footer != "" {
		parts = append(parts, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// chromeHeight is lipgloss.Height except that an empty string takes no rows.
func chromeHeight(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}

// clip pads s to a and cuts whatever does not fit.
func clip(s string, a Area) string {
	return lipgloss.NewStyle().
		Width(a.Width).
		MaxWidth(a.Width).
		Height(a.Height).
		MaxHeight(a.Height).
		Render(s)
}

// splitWidths divides width between a list and a detail pane. ratio is the
// detail pane's share; each side keeps at least MinimumWidth/2 columns.
func splitWidths(width int, ratio float64) (left, right int) {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	right = int(float64(width) * ratio)
	minSide := MinimumWidth / 2
	right = max(minSide, min(right, width-minSide))
	return width - right, right
}
