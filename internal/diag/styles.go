// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     diag
// Description: Styles for rendered diagnostics
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package diag

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - shared with the tree viewer
var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorGutter  = lipgloss.Color("#64748B") // Slate 500
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
	ColorAccent  = lipgloss.Color("#8B5CF6") // Violet
)

// Styles groups the styles used by a Renderer
type Styles struct {
	Location lipgloss.Style
	Severity lipgloss.Style
	Message  lipgloss.Style
	Gutter   lipgloss.Style
	Caret    lipgloss.Style
}

// ColorStyles returns the coloured diagnostic styles
func ColorStyles() Styles {
	return Styles{
		Location: lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true),
		Severity: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Message: lipgloss.NewStyle().
			Foreground(ColorText),
		Gutter: lipgloss.NewStyle().
			Foreground(ColorGutter),
		Caret: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Location: plain,
		Severity: plain,
		Message:  plain,
		Gutter:   plain,
		Caret:    plain,
	}
}
