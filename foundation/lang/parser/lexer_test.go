// File: lexer_test.go
// Title: Quill Lexer Unit Tests
// Description: Tests for tokenization of all quill syntax elements, numeric
//              literals in every base, error tokens and position tracking.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial comprehensive test suite
// - 2026-10-19 v0.2.0: quill token set

package parser

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/quill/foundation/lang/token"
)

// lexAll pulls tokens until and including the first EOF
func lexAll(source string) []token.Token {
	l := NewLexer(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func shapes(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.String()
	}
	return out
}

func TestLexer_NextToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Constant declaration",
			input:    "x :: 1 + 2;",
			expected: []string{"IDENTIFIER(x)", "COLON(:)", "COLON(:)", "INTEGER(1)", "PLUS(+)", "INTEGER(2)", "SEMICOLON(;)", "EOF"},
		},
		{
			name:  "Procedure",
			input: "f :: (a: i32, b = 2) -> i32 { a; }",
			expected: []string{
				"IDENTIFIER(f)", "COLON(:)", "COLON(:)", "LEFT_PAREN(()",
				"IDENTIFIER(a)", "COLON(:)", "IDENTIFIER(i32)", "COMMA(,)",
				"IDENTIFIER(b)", "EQUALS(=)", "INTEGER(2)", "RIGHT_PAREN())",
				"RIGHT_ARROW(->)", "IDENTIFIER(i32)", "LEFT_BRACE({)",
				"IDENTIFIER(a)", "SEMICOLON(;)", "RIGHT_BRACE(})", "EOF",
			},
		},
		{
			name:  "Operators maximal munch",
			input: "+ += - -= -> * *= / /= % %= = == ! !=",
			expected: []string{
				"PLUS(+)", "PLUS_EQUALS(+=)", "MINUS(-)", "MINUS_EQUALS(-=)", "RIGHT_ARROW(->)",
				"ASTERISK(*)", "ASTERISK_EQUALS(*=)", "SLASH(/)", "SLASH_EQUALS(/=)",
				"PERCENT(%)", "PERCENT_EQUALS(%=)", "EQUALS(=)", "EQUALS_EQUALS(==)",
				"EXCLAMATION_MARK(!)", "EXCLAMATION_MARK_EQUALS(!=)", "EOF",
			},
		},
		{
			name:     "Operators without spaces",
			input:    "a+=-b->c",
			expected: []string{"IDENTIFIER(a)", "PLUS_EQUALS(+=)", "MINUS(-)", "IDENTIFIER(b)", "RIGHT_ARROW(->)", "IDENTIFIER(c)", "EOF"},
		},
		{
			name:     "Identifiers with digits and underscores",
			input:    "_tmp x1 snake_case",
			expected: []string{"IDENTIFIER(_tmp)", "IDENTIFIER(x1)", "IDENTIFIER(snake_case)", "EOF"},
		},
		{
			name:     "Unknown character",
			input:    "a @ b",
			expected: []string{"IDENTIFIER(a)", "ERROR(Unknown character)", "IDENTIFIER(b)", "EOF"},
		},
		{
			name:     "Non-ASCII letter",
			input:    "é",
			expected: []string{"ERROR(Unknown character)", "EOF"},
		},
		{
			name:     "NUL inside source",
			input:    "a\x00b",
			expected: []string{"IDENTIFIER(a)", "ERROR(Unknown character)", "IDENTIFIER(b)", "EOF"},
		},
		{
			name:     "Lexing continues after an error",
			input:    "0xG1",
			expected: []string{"ERROR(Digit greater than base)", "INTEGER(1)", "EOF"},
		},
		{
			name:     "Whitespace only",
			input:    " \t\r\n ",
			expected: []string{"EOF"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: []string{"EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shapes(lexAll(tt.input))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input  string
		kind   token.Kind
		value  uint64
		float  float64
		errMsg string
		column int // Column of the error token
	}{
		{input: "0", kind: token.Integer, value: 0},
		{input: "42", kind: token.Integer, value: 42},
		{input: "007", kind: token.Integer, value: 7},
		{input: "0x1F", kind: token.Integer, value: 31},
		{input: "0XfF", kind: token.Integer, value: 255},
		{input: "0b101", kind: token.Integer, value: 5},
		{input: "0B11", kind: token.Integer, value: 3},
		{input: "2_000", kind: token.Integer, value: 2000},
		{input: "0x_ff_ff", kind: token.Integer, value: 0xffff},
		{input: "18446744073709551615", kind: token.Integer, value: math.MaxUint64},
		{input: "3.14", kind: token.Float, float: 3.14},
		{input: "0.5", kind: token.Float, float: 0.5},
		{input: "1_0.2_5", kind: token.Float, float: 10.25},
		{input: "7.", kind: token.Float, float: 7},
		{input: "0xG", kind: token.Error, errMsg: MsgDigitGreater, column: 3},
		{input: "0b102", kind: token.Error, errMsg: MsgDigitGreater, column: 5},
		{input: "12a", kind: token.Error, errMsg: MsgDigitGreater, column: 3},
		{input: "1.5e3", kind: token.Error, errMsg: MsgDigitGreater, column: 4},
		{input: "1.2.3", kind: token.Error, errMsg: MsgMultipleDots, column: 4},
		{input: "0b1.1", kind: token.Error, errMsg: MsgFloatNotBase10, column: 4},
		{input: "0x1.0", kind: token.Error, errMsg: MsgFloatNotBase10, column: 4},
		{input: "18446744073709551616", kind: token.Error, errMsg: MsgIntegerOverflow, column: 20},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v (%v)", tok.Kind, tt.kind, tok)
			}

			switch tt.kind {
			case token.Integer:
				if tok.Int != tt.value {
					t.Errorf("Int = %d, want %d", tok.Int, tt.value)
				}
				if tok.Length != len(tt.input) {
					t.Errorf("Length = %d, want %d", tok.Length, len(tt.input))
				}
			case token.Float:
				if math.Abs(tok.Float-tt.float) > 1e-12 {
					t.Errorf("Float = %v, want %v", tok.Float, tt.float)
				}
				if tok.Length != len(tt.input) {
					t.Errorf("Length = %d, want %d", tok.Length, len(tt.input))
				}
			case token.Error:
				if tok.Text != tt.errMsg {
					t.Errorf("message = %q, want %q", tok.Text, tt.errMsg)
				}
				if tok.Column != tt.column || tok.Position != tt.column-1 || tok.Length != 1 {
					t.Errorf("error at col %d pos %d len %d, want col %d len 1",
						tok.Column, tok.Position, tok.Length, tt.column)
				}
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	got := lexAll("a\n  bc\r\n\t->é")

	want := []token.Token{
		{Kind: token.Identifier, Text: "a", Position: 0, Line: 1, Column: 1, Length: 1},
		{Kind: token.Identifier, Text: "bc", Position: 4, Line: 2, Column: 3, Length: 2},
		{Kind: token.RightArrow, Position: 9, Line: 3, Column: 2, Length: 2},
		{Kind: token.Error, Text: MsgUnknownCharacter, Position: 11, Line: 3, Column: 4, Length: 1},
		{Kind: token.EOF, Position: 12, Line: 3, Column: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

// spell renders a token back to source text the lexer accepts
func spell(tok token.Token) string {
	switch tok.Kind {
	case token.Identifier:
		return tok.Text
	case token.Integer:
		return strconv.FormatUint(tok.Int, 10)
	case token.Float:
		text := strconv.FormatFloat(tok.Float, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text
	default:
		return tok.Kind.Symbol()
	}
}

func TestLexer_RoundTrip(t *testing.T) {
	inputs := []string{
		"x :: 1 + 2;",
		"a+=-b->c",
		"f :: (a: i32, b = 2) -> i32 { a %= b * 3; }",
		"0x1F 0b101 2_000 3.14 7. 0.5",
		"==!=!=+-*/%,;",
		"{(x)}",
		"18446744073709551615",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := lexAll(input)
			parts := make([]string, 0, len(first))
			for _, tok := range first[:len(first)-1] {
				parts = append(parts, spell(tok))
			}
			second := lexAll(strings.Join(parts, " "))

			kinds := func(tokens []token.Token) []token.Kind {
				out := make([]token.Kind, len(tokens))
				for i, tok := range tokens {
					out[i] = tok.Kind
				}
				return out
			}
			if diff := cmp.Diff(kinds(first), kinds(second)); diff != "" {
				t.Errorf("kinds changed after re-lexing %q (-first +second):\n%s", strings.Join(parts, " "), diff)
			}
			for i, tok := range second {
				if tok.Kind == token.EOF && i != len(second)-1 {
					t.Errorf("EOF at index %d of %d", i, len(second))
				}
				if tok.Kind == token.Error {
					t.Errorf("re-lexing produced %v", tok)
				}
			}
			if diff := cmp.Diff(shapes(first), shapes(second)); diff != "" {
				t.Errorf("payloads changed (-first +second):\n%s", diff)
			}
		})
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	l := NewLexer("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end returned %v", i, tok)
		}
	}
}

func TestLexer_Tokenize(t *testing.T) {
	tokens, err := TokenizeSource("a := 1;")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 6 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Errorf("Tokenize() = %v", shapes(tokens))
	}

	tokens, err = TokenizeSource("a\n 1.2.3 b")
	if err == nil {
		t.Fatal("Tokenize() should fail on an error token")
	}
	se, ok := AsSyntaxError(err)
	if !ok || !se.Lexical {
		t.Fatalf("error = %#v, want lexical *SyntaxError", err)
	}
	if se.Line != 2 || se.Column != 5 || se.Message != MsgMultipleDots {
		t.Errorf("error at %d:%d %q", se.Line, se.Column, se.Message)
	}
	if last := tokens[len(tokens)-1]; last.Kind != token.Error {
		t.Errorf("last token = %v, want the error token", last)
	}
}
