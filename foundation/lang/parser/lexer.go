// File: lexer.go
// Title: Quill Lexical Analyzer
// Description: Implements the lexical analysis phase of quill parsing.
//              Converts source text into tokens on demand, one at a time.
//              Malformed input never aborts the lexer; it produces error
//              tokens carrying a message and the offending location.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package parser

import (
	"math/bits"

	"github.com/msto63/quill/foundation/lang/token"
)

// Lexical error messages carried by token.Error tokens
const (
	MsgUnknownCharacter = "Unknown character"
	MsgDigitGreater     = "Digit greater than base"
	MsgMultipleDots     = "Cannot have multiple '.' in float literal"
	MsgFloatNotBase10   = "Float literal must be base 10"
	MsgIntegerOverflow  = "Integer literal overflows 64 bits"
)

const (
	endOfInput      = rune(0)
	decimalBase     = 10
	hexadecimalBase = 16
	binaryBase      = 2
	symbolBase      = 36 // 0-9 followed by a-z
)

// Lexer performs lexical analysis of quill source text
type Lexer struct {
	source   []rune // Source as Unicode scalars
	position int    // Index of the current character
	line     int    // Current line number (1-based)
	column   int    // Current column number (1-based)
}

// NewLexer creates a new lexer for the given source
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: []rune(source),
		line:   1,
		column: 1,
	}
}

// NextToken returns the next token from the source and advances past it.
// Once the end of input is reached it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start, line, column := l.position, l.line, l.column
	emit := func(kind token.Kind) token.Token {
		return token.Token{
			Kind:     kind,
			Position: start,
			Line:     line,
			Column:   column,
			Length:   l.position - start,
		}
	}

	ch := l.current()
	switch ch {
	case endOfInput:
		if l.position < len(l.source) {
			// A literal NUL inside the source is not the end of input
			l.readChar()
			return l.errorAt(start, line, column, MsgUnknownCharacter)
		}
		return emit(token.EOF)
	case ':':
		l.readChar()
		return emit(token.Colon)
	case ';':
		l.readChar()
		return emit(token.Semicolon)
	case '(':
		l.readChar()
		return emit(token.LeftParen)
	case ')':
		l.readChar()
		return emit(token.RightParen)
	case '{':
		l.readChar()
		return emit(token.LeftBrace)
	case '}':
		l.readChar()
		return emit(token.RightBrace)
	case ',':
		l.readChar()
		return emit(token.Comma)
	case '+':
		return emit(l.matchOperator(token.Plus, token.PlusEquals))
	case '-':
		l.readChar()
		switch l.current() {
		case '=':
			l.readChar()
			return emit(token.MinusEquals)
		case '>':
			l.readChar()
			return emit(token.RightArrow)
		}
		return emit(token.Minus)
	case '*':
		return emit(l.matchOperator(token.Asterisk, token.AsteriskEquals))
	case '/':
		return emit(l.matchOperator(token.Slash, token.SlashEquals))
	case '%':
		return emit(l.matchOperator(token.Percent, token.PercentEquals))
	case '=':
		return emit(l.matchOperator(token.Equals, token.EqualsEquals))
	case '!':
		return emit(l.matchOperator(token.ExclamationMark, token.ExclamationMarkEquals))
	}

	switch {
	case isLetter(ch):
		tok := emit(token.Identifier)
		tok.Text = l.readIdentifier()
		tok.Length = l.position - start
		return tok
	case isDigit(ch):
		return l.readNumber(start, line, column)
	}

	l.readChar()
	return l.errorAt(start, line, column, MsgUnknownCharacter)
}

// Tokenize collects all tokens up to and including EOF. It stops at the
// first error token and returns it together with a *SyntaxError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)

		switch tok.Kind {
		case token.EOF:
			return tokens, nil
		case token.Error:
			return tokens, newLexicalError(tok)
		}
	}
}

// matchOperator consumes a one-character operator and its optional '='
// suffixed compound form
func (l *Lexer) matchOperator(single, compound token.Kind) token.Kind {
	l.readChar()
	if l.current() == '=' {
		l.readChar()
		return compound
	}
	return single
}

// readIdentifier reads letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.current()) || isDigit(l.current()) {
		l.readChar()
	}
	return string(l.source[start:l.position])
}

// readNumber scans an integer or float literal in base 2, 10 or 16
func (l *Lexer) readNumber(start, line, column int) token.Token {
	if l.current() == '0' {
		l.readChar()
	}

	base := uint64(decimalBase)
	switch l.current() {
	case 'x', 'X':
		l.readChar()
		base = hexadecimalBase
	case 'b', 'B':
		l.readChar()
		base = binaryBase
	}

	var value uint64
	for {
		ch := l.current()
		switch {
		case ch == '_':
			l.readChar()

		case ch == '.':
			if base != decimalBase {
				return l.errorHere(MsgFloatNotBase10)
			}
			l.readChar()
			return l.readFraction(value, start, line, column)

		case isDigitSymbol(ch):
			digit := digitValue(ch)
			if digit >= base {
				return l.errorHere(MsgDigitGreater)
			}
			hi, lo := bits.Mul64(value, base)
			sum, carry := bits.Add64(lo, digit, 0)
			if hi != 0 || carry != 0 {
				return l.errorHere(MsgIntegerOverflow)
			}
			value = sum
			l.readChar()

		default:
			return token.Token{
				Kind:     token.Integer,
				Int:      value,
				Position: start,
				Line:     line,
				Column:   column,
				Length:   l.position - start,
			}
		}
	}
}

// readFraction scans the digits after the decimal point of a base 10 literal
func (l *Lexer) readFraction(whole uint64, start, line, column int) token.Token {
	value := float64(whole)
	scale := 1.0

	for {
		ch := l.current()
		switch {
		case ch == '_':
			l.readChar()

		case ch == '.':
			return l.errorHere(MsgMultipleDots)

		case isDigitSymbol(ch):
			digit := digitValue(ch)
			if digit >= decimalBase {
				return l.errorHere(MsgDigitGreater)
			}
			scale *= decimalBase
			value += float64(digit) / scale
			l.readChar()

		default:
			return token.Token{
				Kind:     token.Float,
				Float:    value,
				Position: start,
				Line:     line,
				Column:   column,
				Length:   l.position - start,
			}
		}
	}
}

// errorHere produces an error token for the current character and consumes it
func (l *Lexer) errorHere(message string) token.Token {
	start, line, column := l.position, l.line, l.column
	l.readChar()
	return l.errorAt(start, line, column, message)
}

func (l *Lexer) errorAt(position, line, column int, message string) token.Token {
	return token.Token{
		Kind:     token.Error,
		Text:     message,
		Position: position,
		Line:     line,
		Column:   column,
		Length:   1,
	}
}

// current returns the character under the cursor, or 0 at end of input
func (l *Lexer) current() rune {
	if l.position >= len(l.source) {
		return endOfInput
	}
	return l.source[l.position]
}

// readChar advances past the current character, tracking line and column
func (l *Lexer) readChar() {
	if l.position >= len(l.source) {
		return
	}
	if l.source[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

// skipWhitespace skips ASCII whitespace
func (l *Lexer) skipWhitespace() {
	for {
		switch l.current() {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		default:
			return
		}
	}
}

// Utility functions

// isLetter checks for an ASCII letter or underscore
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks for an ASCII decimal digit
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isDigitSymbol checks for a base 36 digit symbol
func isDigitSymbol(ch rune) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// digitValue maps 0-9 to 0-9 and letters to 10-35
func digitValue(ch rune) uint64 {
	switch {
	case isDigit(ch):
		return uint64(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return uint64(ch-'a') + decimalBase
	case 'A' <= ch && ch <= 'Z':
		return uint64(ch-'A') + decimalBase
	default:
		return symbolBase
	}
}

// TokenizeSource is a convenience function that tokenizes source text
func TokenizeSource(source string) ([]token.Token, error) {
	return NewLexer(source).Tokenize()
}
