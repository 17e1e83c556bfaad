// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimBroddin/raybun/internal/classify"
)

var (
	// Color palette
	PrimaryColor   = lipgloss.Color("#7C3AED")
	SecondaryColor = lipgloss.Color("#A78BFA")
	AccentColor    = lipgloss.Color("#10B981")
	TextColor      = lipgloss.Color("#F3F4F6")
	MutedColor     = lipgloss.Color("#9CA3AF")
	BorderColor    = lipgloss.Color("#4B5563")
	ErrorColor     = lipgloss.Color("#EF4444")
	WarningColor   = lipgloss.Color("#F59E0B")
)

// categoryColors maps each display category to its badge color.
var categoryColors = map[classify.Category]lipgloss.Color{
	classify.CategoryLog:     lipgloss.Color("#60A5FA"),
	classify.CategoryError:   ErrorColor,
	classify.CategoryQuery:   lipgloss.Color("#F472B6"),
	classify.CategoryData:    lipgloss.Color("#34D399"),
	classify.CategoryMarkup:  lipgloss.Color("#FB923C"),
	classify.CategoryTiming:  WarningColor,
	classify.CategoryValue:   SecondaryColor,
	classify.CategoryMedia:   lipgloss.Color("#2DD4BF"),
	classify.CategoryControl: lipgloss.Color("#E879F9"),
	classify.CategoryDefault: MutedColor,
}

// entryColors maps the color names a client may set on an entry.
var entryColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("#22C55E"),
	"orange": lipgloss.Color("#F97316"),
	"red":    lipgloss.Color("#EF4444"),
	"purple": lipgloss.Color("#A855F7"),
	"blue":   lipgloss.Color("#3B82F6"),
	"gray":   lipgloss.Color("#6B7280"),
	"grey":   lipgloss.Color("#6B7280"),
}

// CategoryColor returns the badge color for c.
func CategoryColor(c classify.Category) lipgloss.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return MutedColor
}

// EntryColor resolves a client color name. Unknown names report false.
func EntryColor(name string) (lipgloss.Color, bool) {
	color, ok := entryColors[strings.ToLower(name)]
	return color, ok
}

// BadgeStyle renders a payload type badge in its category color.
func BadgeStyle(c classify.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111827")).
		Background(CategoryColor(c)).
		Bold(true).
		Padding(0, 1)
}

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Align(lipgloss.Left)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	BreadcrumbSeparator = lipgloss.NewStyle().
				Foreground(BorderColor).
				SetString(" > ")

	StatsStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Footer styles
	FooterStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(1).
			PaddingRight(1)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	HiddenStyle = lipgloss.NewStyle().
			Foreground(BorderColor).
			Italic(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1F2937"))

	EmptyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Padding(1, 2)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// GetDivider returns a horizontal divider of the specified width
func GetDivider(width int) string {
	if width <= 0 {
		return ""
	}
	dividerText := strings.Repeat("─", width)
	return lipgloss.NewStyle().
		Foreground(BorderColor).
		Render(dividerText)
}
