// File: token.go
// Title: Quill Token Model
// Description: Defines the closed set of token kinds produced by the lexer
//              and the immutable Token value carrying its payload and
//              source location.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token model

package token

import (
	"fmt"
	"strconv"
)

// Kind identifies the lexical class of a token
type Kind uint8

const (
	// Special tokens
	EOF Kind = iota
	Error

	// Identifiers and literals
	Identifier // foo, _bar, i32
	Integer    // 42, 0x2A, 0b101010
	Float      // 3.14

	// Delimiters
	Colon      // :
	Semicolon  // ;
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	Comma      // ,
	RightArrow // ->

	// Operators
	Plus            // +
	Minus           // -
	Asterisk        // *
	Slash           // /
	Percent         // %
	Equals          // =
	ExclamationMark // !

	// Compound operators
	PlusEquals            // +=
	MinusEquals           // -=
	AsteriskEquals        // *=
	SlashEquals           // /=
	PercentEquals         // %=
	EqualsEquals          // ==
	ExclamationMarkEquals // !=
)

var kindNames = [...]string{
	EOF:                   "EOF",
	Error:                 "ERROR",
	Identifier:            "IDENTIFIER",
	Integer:               "INTEGER",
	Float:                 "FLOAT",
	Colon:                 "COLON",
	Semicolon:             "SEMICOLON",
	LeftParen:             "LEFT_PAREN",
	RightParen:            "RIGHT_PAREN",
	LeftBrace:             "LEFT_BRACE",
	RightBrace:            "RIGHT_BRACE",
	Comma:                 "COMMA",
	RightArrow:            "RIGHT_ARROW",
	Plus:                  "PLUS",
	Minus:                 "MINUS",
	Asterisk:              "ASTERISK",
	Slash:                 "SLASH",
	Percent:               "PERCENT",
	Equals:                "EQUALS",
	ExclamationMark:       "EXCLAMATION_MARK",
	PlusEquals:            "PLUS_EQUALS",
	MinusEquals:           "MINUS_EQUALS",
	AsteriskEquals:        "ASTERISK_EQUALS",
	SlashEquals:           "SLASH_EQUALS",
	PercentEquals:         "PERCENT_EQUALS",
	EqualsEquals:          "EQUALS_EQUALS",
	ExclamationMarkEquals: "EXCLAMATION_MARK_EQUALS",
}

var kindSymbols = [...]string{
	Colon:                 ":",
	Semicolon:             ";",
	LeftParen:             "(",
	RightParen:            ")",
	LeftBrace:             "{",
	RightBrace:            "}",
	Comma:                 ",",
	RightArrow:            "->",
	Plus:                  "+",
	Minus:                 "-",
	Asterisk:              "*",
	Slash:                 "/",
	Percent:               "%",
	Equals:                "=",
	ExclamationMark:       "!",
	PlusEquals:            "+=",
	MinusEquals:           "-=",
	AsteriskEquals:        "*=",
	SlashEquals:           "/=",
	PercentEquals:         "%=",
	EqualsEquals:          "==",
	ExclamationMarkEquals: "!=",
}

// String returns the upper-case name of the kind
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Symbol returns the source spelling of a fixed punctuation or operator kind.
// Kinds carrying a payload return an empty string.
func (k Kind) Symbol() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	return ""
}

// IsCompoundAssignment reports whether k is one of += -= *= /= %=
func (k Kind) IsCompoundAssignment() bool {
	switch k {
	case PlusEquals, MinusEquals, AsteriskEquals, SlashEquals, PercentEquals:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether k is a numeric literal kind
func (k Kind) IsLiteral() bool {
	return k == Integer || k == Float
}

// Token is an immutable lexical unit with its payload and source location
type Token struct {
	Kind  Kind
	Text  string  // Identifier name or Error message
	Int   uint64  // Integer value
	Float float64 // Float value

	Position int // Unicode scalar index of the first character (0-based)
	Line     int // Line number (1-based)
	Column   int // Column number (1-based)
	Length   int // Length in Unicode scalars
}

// Value returns the payload of the token rendered as text
func (t Token) Value() string {
	switch t.Kind {
	case EOF:
		return ""
	case Error, Identifier:
		return t.Text
	case Integer:
		return strconv.FormatUint(t.Int, 10)
	case Float:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	default:
		return t.Kind.Symbol()
	}
}

// String returns a diagnostic representation such as IDENTIFIER(x)
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Value())
}

// Location formats the line and column of the token as line:column
func (t Token) Location() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
