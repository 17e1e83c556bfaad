// Copyright (C) 2025-2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// HelpItem represents a single help entry
type HelpItem struct {
	Key         string
	Description string
}

// HelpItemsFromBindings turns enabled key bindings into footer help items.
func HelpItemsFromBindings(bindings ...key.Binding) []HelpItem {
	items := make([]HelpItem, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		items = append(items, HelpItem{Key: h.Key, Description: h.Desc})
	}
	return items
}

// RenderHeader creates a header with title, breadcrumbs, and optional status
func RenderHeader(title string, breadcrumbs []string, status string, width int) string {
	var header strings.Builder

	titleLine := TitleStyle.Render(title)
	if len(breadcrumbs) > 0 {
		breadcrumbText := strings.Join(breadcrumbs, BreadcrumbSeparator.String())
		titleLine += "  " + BreadcrumbStyle.Render(breadcrumbText)
	}
	header.WriteString(titleLine)

	if status != "" {
		header.WriteString("\n")
		header.WriteString(StatsStyle.Render(status))
	}

	header.WriteString("\n")
	header.WriteString(GetDivider(width))

	return header.String()
}

// RenderFooter creates a footer with help items
func RenderFooter(helpItems []HelpItem, width int) string {
	if len(helpItems) == 0 {
		return ""
	}

	var footer strings.Builder
	footer.WriteString(GetDivider(width))
	footer.WriteString("\n")

	helpTexts := make([]string, 0, len(helpItems))
	for _, item := range helpItems {
		helpTexts = append(helpTexts, fmt.Sprintf("[%s] %s",
			HelpKeyStyle.Render(item.Key),
			HelpTextStyle.Render(item.Description)))
	}

	// lipgloss wraps long help lines at the footer width
	footer.WriteString(FooterStyle.Width(width).Render(strings.Join(helpTexts, " • ")))

	return footer.String()
}
