// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     treeview
// Description: Styles for the tree viewer TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package treeview

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as the diagnostics renderer for consistency
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	// Background colors
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	// Text colors
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)
)

// Tree node styles
var (
	RoleStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StructureStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	StatementStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ExpressionStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	TypeStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	NodeTextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	AnnotationStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Token styles
var (
	TokenPositionStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	TokenStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	TokenErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Panel/Box styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	ErrorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)

	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2).
			MarginBottom(1)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ToggleActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	ToggleInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Logo
const Logo = "quill viewer"

// RenderKeyHint renders a keyboard shortcut hint
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(description)
}

// RenderToggle renders an on/off indicator
func RenderToggle(name string, active bool) string {
	if active {
		return ToggleActiveStyle.Render(name)
	}
	return ToggleInactiveStyle.Render(name)
}

// KindStyle picks the style for a node kind
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "File", "Scope":
		return StructureStyle
	case "Declaration", "Assignment":
		return StatementStyle
	case "Type":
		return TypeStyle
	default:
		return ExpressionStyle
	}
}
