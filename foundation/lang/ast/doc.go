// File: doc.go
// Title: Quill Syntax Tree Package Documentation
// Description: Defines the arena based syntax tree produced by the quill
//              parser, together with walking and validation utilities.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST implementation
// - 2026-10-19 v0.2.0: Arena and index model for quill

/*
Package ast defines the syntax tree for quill source files.

A Tree owns one slice per node kind. Nodes refer to each other through typed
IDs (FileID, ScopeID, ExprID, ...) and the zero ID of every kind means
"absent". Every node records a Parent back-reference: the enclosing file and
the innermost enclosing scope.

	tree, err := parser.ParseFile("main.ql")
	if err != nil {
		return err
	}
	file := tree.File(tree.Root())
	for _, stmt := range tree.Scope(file.Scope).Statements {
		...
	}

Walk visits the nodes in source order, Validate checks the structural
invariants, and Stats counts the reachable nodes.
*/
package ast
