// File: nodes.go
// Title: Quill Syntax Tree Node Definitions
// Description: Defines the node types of the quill syntax tree. Nodes live in
//              the arenas of a Tree and refer to each other through typed
//              IDs. Every node carries a Parent back-reference naming its
//              enclosing file and innermost enclosing scope.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial node definitions

package ast

import (
	"github.com/msto63/quill/foundation/lang/token"
)

// Typed arena indices. The zero value of each is reserved and means absent.
type (
	FileID   uint32
	ScopeID  uint32
	ExprID   uint32
	DeclID   uint32
	AssignID uint32
	ProcID   uint32
	TypeID   uint32
)

const (
	NoFile   FileID   = 0
	NoScope  ScopeID  = 0
	NoExpr   ExprID   = 0
	NoDecl   DeclID   = 0
	NoAssign AssignID = 0
	NoProc   ProcID   = 0
	NoType   TypeID   = 0
)

// Parent is the non-owning back-reference carried by every node: the
// nearest enclosing file and the innermost enclosing scope. For a scope
// node, Scope names its parent scope.
type Parent struct {
	File  FileID
	Scope ScopeID
}

// Attached reports whether the node has been wired into a file
func (p Parent) Attached() bool {
	return p.File != NoFile
}

// File is the root node of a parsed source file
type File struct {
	Path   string
	Source string
	Scope  ScopeID // Top-level scope
}

// Scope is an ordered sequence of statements
type Scope struct {
	Parent     Parent
	Open       token.Token // '{', zero for a top-level scope
	Statements []Stmt
}

// StmtKind tags the statement variant
type StmtKind uint8

const (
	StmtExpression StmtKind = iota + 1
	StmtScope
	StmtDeclaration
	StmtAssignment
)

// String returns the statement kind name
func (k StmtKind) String() string {
	switch k {
	case StmtExpression:
		return "Expression"
	case StmtScope:
		return "Scope"
	case StmtDeclaration:
		return "Declaration"
	case StmtAssignment:
		return "Assignment"
	default:
		return "Invalid"
	}
}

// Stmt is a tagged statement; exactly the field matching Kind is set
type Stmt struct {
	Kind   StmtKind
	Parent Parent
	Expr   ExprID
	Scope  ScopeID
	Decl   DeclID
	Assign AssignID
}

// Declaration binds a name to a type, a value or both
type Declaration struct {
	Parent   Parent
	Name     token.Token
	Type     TypeID // NoType when absent
	Value    ExprID // NoExpr when absent
	Constant bool   // Bound with ':' rather than '='
}

// Assignment applies a compound assignment operator
type Assignment struct {
	Parent   Parent
	Left     ExprID
	Operator token.Token // One of += -= *= /= %=
	Right    ExprID
}

// ExprKind tags the expression variant
type ExprKind uint8

const (
	ExprProcedure ExprKind = iota + 1
	ExprName
	ExprLiteral
	ExprUnary
	ExprBinary
)

// String returns the expression kind name
func (k ExprKind) String() string {
	switch k {
	case ExprProcedure:
		return "Procedure"
	case ExprName:
		return "Name"
	case ExprLiteral:
		return "Literal"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	default:
		return "Invalid"
	}
}

// Expr is a tagged expression.
//
//	Name, Literal: Token
//	Unary:         Token (operator), Operand
//	Binary:        Token (operator), Left, Right
//	Procedure:     Token ('('), Procedure
type Expr struct {
	Kind      ExprKind
	Parent    Parent
	Token     token.Token
	Operand   ExprID
	Left      ExprID
	Right     ExprID
	Procedure ProcID
}

// Procedure is a first-class procedure literal
type Procedure struct {
	Parent     Parent
	Arguments  []DeclID
	ReturnType TypeID // NoType when absent
	Body       ScopeID
}

// TypeKind tags the type reference variant
type TypeKind uint8

const (
	TypeName TypeKind = iota + 1
)

// String returns the type kind name
func (k TypeKind) String() string {
	if k == TypeName {
		return "Name"
	}
	return "Invalid"
}

// TypeRef refers to a type
type TypeRef struct {
	Kind   TypeKind
	Parent Parent
	Name   token.Token
}
