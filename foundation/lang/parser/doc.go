// File: doc.go
// Title: Quill Parser Package Documentation
// Description: Implements the lexical analyzer and parser for quill source
//              files, producing arena syntax trees with precise error
//              locations.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-19 v0.2.0: quill lexer and grammar

/*
Package parser provides lexical analysis and parsing for quill.

The Lexer turns source text into tokens on demand. It never fails: malformed
input becomes an error token that carries a message and the location of the
offending character. The Parser pulls tokens with one token of lookahead and
builds an ast.Tree in a single pass:

	p, err := parser.New(parser.Options{Logger: logger})
	if err != nil {
		return err
	}
	tree, err := p.Parse("main.ql", source)
	if se, ok := parser.AsSyntaxError(err); ok {
		fmt.Println(se.Line, se.Column, se.Message)
	}

Grammar:

	File        = Statement* EOF
	Scope       = '{' Statement* '}'
	Statement   = ';'* ( Scope | Expression Tail )
	Tail        = ':' Type? ( '=' | ':' ) Expression? ';'
	            | ':' Type ';'
	            | CompoundOp Expression ';'
	            | ';'
	Expression  = Unary? Primary ( BinaryOp Expression )*
	Primary     = Identifier | Integer | Float | '(' Expression ')' | Procedure
	Procedure   = '(' ( Argument ( ',' Argument )* )? ')' ( '->' Type )? Scope
	Argument    = Identifier ':' Type? ( '=' Expression )?

The ';' after a declaration whose value is a procedure is optional. Unary
'+' and '-' bind tighter than '*', '/' and '%', which bind tighter than
binary '+' and '-'. Binary operators are left associative.

Every error is fatal: parsing stops at the first problem and Parse returns a
*SyntaxError without a tree.
*/
package parser
