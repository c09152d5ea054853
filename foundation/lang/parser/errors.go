// File: errors.go
// Title: Quill Syntax Errors
// Description: SyntaxError is the single failure type of lexing and parsing.
//              It carries the offending token and its source location.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial syntax error type

package parser

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/token"
)

// SyntaxError represents a fatal lexical or grammar error
type SyntaxError struct {
	Message string
	Token   token.Token // Offending token
	Path    string      // Source path, empty for anonymous input
	Line    int
	Column  int
	Lexical bool // Raised from an error token of the lexer
}

func (e *SyntaxError) Error() string {
	location := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.Path != "" {
		location = e.Path + ":" + location
	}
	if e.Lexical {
		return fmt.Sprintf("%s: %s", location, e.Message)
	}
	return fmt.Sprintf("%s: %s (token: %s)", location, e.Message, e.Token)
}

// Code maps the error onto the foundation error codes
func (e *SyntaxError) Code() mdwerror.Code {
	if e.Lexical {
		return mdwerror.CodeLexical
	}
	return mdwerror.CodeSyntax
}

// AsFoundationError wraps the syntax error into a structured error that
// keeps the location as details
func (e *SyntaxError) AsFoundationError() *mdwerror.Error {
	return mdwerror.Wrap(e, "parsing failed").
		WithCode(e.Code()).
		WithOperation("parser.Parse").
		WithPath(e.Path).
		WithDetails(map[string]interface{}{
			"line":   e.Line,
			"column": e.Column,
			"token":  e.Token.String(),
		})
}

// AsSyntaxError extracts a *SyntaxError from an error chain
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func newLexicalError(tok token.Token) *SyntaxError {
	return &SyntaxError{
		Message: tok.Text,
		Token:   tok,
		Line:    tok.Line,
		Column:  tok.Column,
		Lexical: true,
	}
}

func newSyntaxError(tok token.Token, message string) *SyntaxError {
	return &SyntaxError{
		Message: message,
		Token:   tok,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
