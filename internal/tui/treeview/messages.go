// ============================================================================
// quill - Compiler Front End
// ============================================================================
//
// Package:     treeview
// Description: Message types for the tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-19
// License:     MIT
// ============================================================================

package treeview

import (
	"time"

	"github.com/msto63/quill/foundation/lang/ast"
	"github.com/msto63/quill/foundation/lang/token"
)

// Mode selects what the viewport shows
type Mode int

const (
	ModeTree Mode = iota
	ModeTokens
)

// String returns the display name of the mode
func (m Mode) String() string {
	if m == ModeTokens {
		return "Tokens"
	}
	return "Tree"
}

// sourceLoadedMsg is sent when the file was read, lexed and parsed
type sourceLoadedMsg struct {
	source   string
	tokens   []token.Token
	tree     *ast.Tree
	stats    ast.Stats
	parseErr error // Syntax error, the source itself was readable
	err      error // The source could not be loaded
	at       time.Time
}
