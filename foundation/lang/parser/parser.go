// File: parser.go
// Title: Quill Parser Implementation
// Description: Recursive descent parser with precedence climbing for
//              expressions. Builds an arena syntax tree in a single pass
//              with one token of lookahead. Every grammar violation is
//              fatal and reported as a *SyntaxError; no partial tree is
//              returned.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-19 v0.2.0: quill grammar on the arena tree

package parser

import (
	"fmt"
	"os"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	mdwlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/lang/ast"
	"github.com/msto63/quill/foundation/lang/token"
)

// DefaultMaxSourceLength is the source size limit in bytes when none is set
const DefaultMaxSourceLength = 8 << 20

// Operator precedences. Zero means "not an operator" in that position.
var (
	unaryPrecedence = map[token.Kind]int{
		token.Plus:  3,
		token.Minus: 3,
	}
	binaryPrecedence = map[token.Kind]int{
		token.Asterisk: 2,
		token.Slash:    2,
		token.Percent:  2,
		token.Plus:     1,
		token.Minus:    1,
	}
)

// Parser implements recursive descent parsing for quill. A Parser holds
// per-parse state and must not be shared between goroutines.
type Parser struct {
	lexer   *Lexer
	current token.Token // One token of lookahead
	tree    *ast.Tree
	logger  *mdwlog.Logger
	run     *mdwlog.Logger // Logger of the current parse
	trace   bool
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger          *mdwlog.Logger
	MaxSourceLength int // Bytes; 0 selects DefaultMaxSourceLength
}

// New creates a new quill parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxSourceLength < 0 {
		return nil, mdwerror.Newf("invalid maximum source length %d", opts.MaxSourceLength).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.New")
	}
	if opts.MaxSourceLength == 0 {
		opts.MaxSourceLength = DefaultMaxSourceLength
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "parser"),
		options: opts,
	}, nil
}

// Parse parses the source of the file at path and returns its tree. On
// failure the error is a *SyntaxError, or a foundation error with code
// INVALID_INPUT when the source exceeds the configured size.
func (p *Parser) Parse(path, source string) (*ast.Tree, error) {
	if len(source) > p.options.MaxSourceLength {
		return nil, mdwerror.Newf("source exceeds maximum length: %d > %d",
			len(source), p.options.MaxSourceLength).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("parser.Parse").
			WithPath(path)
	}

	logger := p.logger.WithNewCorrelationID().WithField("path", path)
	p.run = logger
	p.trace = logger.IsLevelEnabled(mdwlog.LevelTrace)
	logger.Debug("Parsing started", mdwlog.Fields{
		"bytes": len(source),
	})
	timer := logger.StartTimer("parse")

	tree, err := p.parseFile(path, source)
	if err != nil {
		if se, ok := AsSyntaxError(err); ok {
			se.Path = path
		}
		timer.StopWithError(err)
		return nil, err
	}

	if stats, statsErr := tree.Stats(); statsErr == nil {
		timer.Stop(mdwlog.Fields{
			"statements":  stats.Statements,
			"expressions": stats.Expressions,
			"scopes":      stats.Scopes,
		})
	} else {
		timer.Stop()
	}
	return tree, nil
}

// ParseFile reads and parses a file with a default parser
func ParseFile(path string) (*ast.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read source").
			WithCode(mdwerror.CodeIOError).
			WithOperation("parser.ParseFile").
			WithPath(path)
	}
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse(path, string(data))
}

// ParseSource parses anonymous source text with a default parser
func ParseSource(source string) (*ast.Tree, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse("", source)
}

func (p *Parser) parseFile(path, source string) (*ast.Tree, error) {
	p.lexer = NewLexer(source)
	p.tree = ast.NewTree()
	p.current = token.Token{}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	file := p.tree.AddFile(ast.File{Path: path, Source: source})
	top := p.tree.ReserveScope(ast.Parent{File: file, Scope: ast.NoScope})
	p.tree.SetFileScope(file, top)
	in := ast.Parent{File: file, Scope: top}

	for {
		if err := p.skipSemicolons(); err != nil {
			return nil, err
		}
		if p.current.Kind == token.EOF {
			break
		}
		stmt, err := p.parseStatement(in)
		if err != nil {
			return nil, err
		}
		p.tree.AppendStatement(top, stmt)
	}

	tree := p.tree
	p.tree = nil
	return tree, nil
}

// parseScope parses '{' statement* '}' into a freshly reserved scope
func (p *Parser) parseScope(in ast.Parent) (ast.ScopeID, error) {
	if p.current.Kind != token.LeftBrace {
		return ast.NoScope, p.expected("'{'")
	}
	open, err := p.advance()
	if err != nil {
		return ast.NoScope, err
	}

	id := p.tree.ReserveScope(in)
	p.tree.Scope(id).Open = open
	inner := ast.Parent{File: in.File, Scope: id}

	for {
		if err := p.skipSemicolons(); err != nil {
			return ast.NoScope, err
		}
		if p.current.Kind == token.RightBrace {
			break
		}
		if p.current.Kind == token.EOF {
			return ast.NoScope, p.expected("'}'")
		}
		stmt, err := p.parseStatement(inner)
		if err != nil {
			return ast.NoScope, err
		}
		p.tree.AppendStatement(id, stmt)
	}

	if _, err := p.advance(); err != nil {
		return ast.NoScope, err
	}
	return id, nil
}

// parseStatement parses a nested scope, a declaration, an assignment or an
// expression statement
func (p *Parser) parseStatement(in ast.Parent) (ast.Stmt, error) {
	if p.current.Kind == token.LeftBrace {
		scope, err := p.parseScope(in)
		if err != nil {
			return ast.Stmt{}, err
		}
		return ast.Stmt{Kind: ast.StmtScope, Parent: in, Scope: scope}, nil
	}

	expr, err := p.parseExpression(in)
	if err != nil {
		return ast.Stmt{}, err
	}

	switch {
	case p.current.Kind == token.Colon:
		decl, err := p.parseDeclaration(expr, in)
		if err != nil {
			return ast.Stmt{}, err
		}
		return ast.Stmt{Kind: ast.StmtDeclaration, Parent: in, Decl: decl}, nil

	case p.current.Kind.IsCompoundAssignment():
		assign, err := p.parseAssignment(expr, in)
		if err != nil {
			return ast.Stmt{}, err
		}
		return ast.Stmt{Kind: ast.StmtAssignment, Parent: in, Assign: assign}, nil
	}

	if err := p.expect(token.Semicolon); err != nil {
		return ast.Stmt{}, err
	}
	return ast.Stmt{Kind: ast.StmtExpression, Parent: in, Expr: expr}, nil
}

// parseDeclaration parses the part after the name:
//
//	':' Type? ( '=' | ':' ) Value? ';'
//	':' Type ';'
func (p *Parser) parseDeclaration(nameExpr ast.ExprID, in ast.Parent) (ast.DeclID, error) {
	name, ok := p.takeName(nameExpr)
	if !ok {
		return ast.NoDecl, p.errorAt(p.current, "expected name before ':'")
	}
	if _, err := p.advance(); err != nil { // ':'
		return ast.NoDecl, err
	}

	decl := ast.Declaration{Parent: in, Name: name}
	if p.current.Kind != token.Colon && p.current.Kind != token.Equals {
		typ, err := p.parseType(in)
		if err != nil {
			return ast.NoDecl, err
		}
		decl.Type = typ
	}

	switch p.current.Kind {
	case token.Equals:
		if _, err := p.advance(); err != nil {
			return ast.NoDecl, err
		}
	case token.Colon:
		if _, err := p.advance(); err != nil {
			return ast.NoDecl, err
		}
		decl.Constant = true
	case token.Semicolon:
		// Typed declaration without a value
	default:
		return ast.NoDecl, p.expected("':' or '='")
	}

	if p.current.Kind != token.Semicolon {
		value, err := p.parseExpression(in)
		if err != nil {
			return ast.NoDecl, err
		}
		decl.Value = value
	}

	if decl.Type == ast.NoType && decl.Value == ast.NoExpr {
		return ast.NoDecl, p.errorAt(name, fmt.Sprintf("declaration of '%s' needs a type or a value", name.Text))
	}

	if decl.Value == ast.NoExpr || p.tree.Expr(decl.Value).Kind != ast.ExprProcedure {
		if err := p.expect(token.Semicolon); err != nil {
			return ast.NoDecl, err
		}
	}

	return p.tree.AddDeclaration(decl), nil
}

// parseAssignment parses a compound assignment operator and its right side
func (p *Parser) parseAssignment(left ast.ExprID, in ast.Parent) (ast.AssignID, error) {
	operator, err := p.advance()
	if err != nil {
		return ast.NoAssign, err
	}
	right, err := p.parseExpression(in)
	if err != nil {
		return ast.NoAssign, err
	}
	if err := p.expect(token.Semicolon); err != nil {
		return ast.NoAssign, err
	}

	return p.tree.AddAssignment(ast.Assignment{
		Parent:   in,
		Left:     left,
		Operator: operator,
		Right:    right,
	}), nil
}

// parseType parses a type reference. Only named types exist so far.
func (p *Parser) parseType(in ast.Parent) (ast.TypeID, error) {
	if p.current.Kind != token.Identifier {
		return ast.NoType, p.expected("type name")
	}
	name, err := p.advance()
	if err != nil {
		return ast.NoType, err
	}
	return p.tree.AddType(ast.TypeRef{Kind: ast.TypeName, Parent: in, Name: name}), nil
}

func (p *Parser) parseExpression(in ast.Parent) (ast.ExprID, error) {
	return p.parseBinary(0, in)
}

// parseBinary implements precedence climbing. Operators bind only when
// their precedence exceeds bound, which makes binary operators left
// associative.
func (p *Parser) parseBinary(bound int, in ast.Parent) (ast.ExprID, error) {
	var left ast.ExprID

	if precedence := unaryPrecedence[p.current.Kind]; precedence > bound {
		operator, err := p.advance()
		if err != nil {
			return ast.NoExpr, err
		}
		operand, err := p.parseBinary(precedence, in)
		if err != nil {
			return ast.NoExpr, err
		}
		left = p.tree.AddExpr(ast.Expr{Kind: ast.ExprUnary, Parent: in, Token: operator, Operand: operand})
	} else {
		primary, err := p.parsePrimary(in)
		if err != nil {
			return ast.NoExpr, err
		}
		left = primary
	}

	for {
		precedence := binaryPrecedence[p.current.Kind]
		if precedence == 0 || precedence <= bound {
			return left, nil
		}

		operator, err := p.advance()
		if err != nil {
			return ast.NoExpr, err
		}
		right, err := p.parseBinary(precedence, in)
		if err != nil {
			return ast.NoExpr, err
		}
		left = p.tree.AddExpr(ast.Expr{Kind: ast.ExprBinary, Parent: in, Token: operator, Left: left, Right: right})
	}
}

func (p *Parser) parsePrimary(in ast.Parent) (ast.ExprID, error) {
	switch p.current.Kind {
	case token.Identifier:
		tok, err := p.advance()
		if err != nil {
			return ast.NoExpr, err
		}
		return p.tree.AddExpr(ast.Expr{Kind: ast.ExprName, Parent: in, Token: tok}), nil

	case token.Integer, token.Float:
		tok, err := p.advance()
		if err != nil {
			return ast.NoExpr, err
		}
		return p.tree.AddExpr(ast.Expr{Kind: ast.ExprLiteral, Parent: in, Token: tok}), nil

	case token.LeftParen:
		return p.parseParenthesized(in)
	}

	return ast.NoExpr, p.errorAt(p.current, "unexpected token "+describe(p.current))
}

// parseParenthesized decides between a parenthesized expression and a
// procedure literal. A procedure starts with "()" or "(name :".
func (p *Parser) parseParenthesized(in ast.Parent) (ast.ExprID, error) {
	open, err := p.advance()
	if err != nil {
		return ast.NoExpr, err
	}

	if p.current.Kind == token.RightParen {
		if _, err := p.advance(); err != nil {
			return ast.NoExpr, err
		}
		return p.parseProcedure(open, nil, in)
	}

	expr, err := p.parseExpression(in)
	if err != nil {
		return ast.NoExpr, err
	}

	if p.current.Kind == token.Colon {
		name, ok := p.takeName(expr)
		if !ok {
			return ast.NoExpr, p.errorAt(p.current, "expected argument name before ':'")
		}
		if _, err := p.advance(); err != nil {
			return ast.NoExpr, err
		}
		return p.parseProcedure(open, &name, in)
	}

	if err := p.expect(token.RightParen); err != nil {
		return ast.NoExpr, err
	}
	return expr, nil
}

// parseProcedure parses the rest of a procedure literal. first is the name
// of the first argument, whose ':' has already been consumed, or nil for a
// procedure without arguments whose ')' has been consumed.
func (p *Parser) parseProcedure(open token.Token, first *token.Token, in ast.Parent) (ast.ExprID, error) {
	var arguments []ast.DeclID

	if first != nil {
		arg, err := p.parseArgument(*first, in)
		if err != nil {
			return ast.NoExpr, err
		}
		arguments = append(arguments, arg)

		for p.current.Kind == token.Comma {
			if _, err := p.advance(); err != nil {
				return ast.NoExpr, err
			}
			if p.current.Kind != token.Identifier {
				return ast.NoExpr, p.expected("argument name")
			}
			name, err := p.advance()
			if err != nil {
				return ast.NoExpr, err
			}
			if err := p.expect(token.Colon); err != nil {
				return ast.NoExpr, err
			}
			arg, err := p.parseArgument(name, in)
			if err != nil {
				return ast.NoExpr, err
			}
			arguments = append(arguments, arg)
		}

		if err := p.expect(token.RightParen); err != nil {
			return ast.NoExpr, err
		}
	}

	returnType := ast.NoType
	if p.current.Kind == token.RightArrow {
		if _, err := p.advance(); err != nil {
			return ast.NoExpr, err
		}
		typ, err := p.parseType(in)
		if err != nil {
			return ast.NoExpr, err
		}
		returnType = typ
	}

	body, err := p.parseScope(in)
	if err != nil {
		return ast.NoExpr, err
	}

	proc := p.tree.AddProcedure(ast.Procedure{
		Parent:     in,
		Arguments:  arguments,
		ReturnType: returnType,
		Body:       body,
	})
	return p.tree.AddExpr(ast.Expr{Kind: ast.ExprProcedure, Parent: in, Token: open, Procedure: proc}), nil
}

// parseArgument parses "Type? ('=' Value)?" after an argument name and ':'
func (p *Parser) parseArgument(name token.Token, in ast.Parent) (ast.DeclID, error) {
	decl := ast.Declaration{Parent: in, Name: name}

	if p.current.Kind != token.Equals {
		typ, err := p.parseType(in)
		if err != nil {
			return ast.NoDecl, err
		}
		decl.Type = typ
	}

	if p.current.Kind != token.Comma && p.current.Kind != token.RightParen {
		if p.current.Kind != token.Equals {
			return ast.NoDecl, p.expected("'='")
		}
		if _, err := p.advance(); err != nil {
			return ast.NoDecl, err
		}
		value, err := p.parseExpression(in)
		if err != nil {
			return ast.NoDecl, err
		}
		decl.Value = value
	}

	return p.tree.AddDeclaration(decl), nil
}

// Utility methods

// advance returns the current token and loads the next one. Meeting an
// error token from the lexer is fatal.
func (p *Parser) advance() (token.Token, error) {
	tok := p.current
	p.current = p.lexer.NextToken()
	if p.trace {
		p.run.Trace("Token", mdwlog.Fields{
			"token":    p.current.String(),
			"location": p.current.Location(),
		})
	}
	if p.current.Kind == token.Error {
		return tok, newLexicalError(p.current)
	}
	return tok, nil
}

// expect consumes the current token if it has the given kind
func (p *Parser) expect(kind token.Kind) error {
	if p.current.Kind != kind {
		return p.expected("'" + kind.Symbol() + "'")
	}
	_, err := p.advance()
	return err
}

// skipSemicolons skips empty statements
func (p *Parser) skipSemicolons() error {
	for p.current.Kind == token.Semicolon {
		if _, err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// takeName returns the token of a bare name expression and drops the
// expression node, whose name now lives in a declaration
func (p *Parser) takeName(id ast.ExprID) (token.Token, bool) {
	expr := p.tree.Expr(id)
	if expr == nil || expr.Kind != ast.ExprName {
		return token.Token{}, false
	}
	name := expr.Token
	p.tree.DiscardExpr(id)
	return name, true
}

func (p *Parser) expected(what string) error {
	return p.errorAt(p.current, fmt.Sprintf("expected %s, found %s", what, describe(p.current)))
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	return newSyntaxError(tok, message)
}

// describe renders a token for diagnostics
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Identifier:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.Integer:
		return fmt.Sprintf("integer %d", tok.Int)
	case token.Float:
		return "float " + tok.Value()
	case token.Error:
		return tok.Text
	default:
		return "'" + tok.Kind.Symbol() + "'"
	}
}
