// File: doc.go
// Title: Quill Token Package Documentation
// Description: Token kinds and token values shared by the lexer, the parser
//              and the syntax tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial package

/*
Package token defines the lexical vocabulary of the quill language.

A Token is a plain value: its Kind, the payload for identifiers, literals and
error tokens, and the position, line, column and length of its first
character counted in Unicode scalars.
*/
package token
