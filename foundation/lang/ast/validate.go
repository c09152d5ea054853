// File: validate.go
// Title: Quill Syntax Tree Validation
// Description: Structural checks over a finished tree: back-references,
//              statement tags, declaration shape and operator kinds. All
//              problems are collected into one INVALID_TREE error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tree validation

package ast

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/token"
)

// Validate checks the structural invariants of the tree. It returns nil for
// a well-formed tree.
func (t *Tree) Validate() error {
	v := validator{tree: t, seen: make(map[ScopeID]bool)}

	if t.root == NoFile {
		v.addf("tree has no root file")
	}
	for _, id := range t.Files() {
		v.file(id)
	}
	v.attachment()

	if len(v.problems) == 0 {
		return nil
	}
	return mdwerror.Newf("invalid syntax tree: %s", strings.Join(v.problems, "; ")).
		WithCode(mdwerror.CodeInvalidTree).
		WithOperation("ast.Validate").
		WithDetail("problems", v.problems)
}

type validator struct {
	tree     *Tree
	seen     map[ScopeID]bool
	problems []string
}

func (v *validator) addf(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) parent(what string, got, want Parent) {
	if got != want {
		v.addf("%s has parent %+v, want %+v", what, got, want)
	}
}

func (v *validator) file(id FileID) {
	f := v.tree.File(id)
	if v.tree.Scope(f.Scope) == nil {
		v.addf("file %d has no top-level scope", id)
		return
	}
	v.scope(f.Scope, Parent{File: id, Scope: NoScope})
}

// scope checks a scope whose own back-reference must equal want
func (v *validator) scope(id ScopeID, want Parent) {
	s := v.tree.Scope(id)
	if s == nil {
		v.addf("scope %d does not exist", id)
		return
	}
	if v.seen[id] {
		v.addf("scope %d is reachable more than once", id)
		return
	}
	v.seen[id] = true
	v.parent(fmt.Sprintf("scope %d", id), s.Parent, want)

	inner := Parent{File: want.File, Scope: id}
	for i, stmt := range s.Statements {
		where := fmt.Sprintf("statement %d of scope %d", i, id)
		v.parent(where, stmt.Parent, inner)
		v.statement(where, stmt, inner)
	}
}

func (v *validator) statement(where string, stmt Stmt, inner Parent) {
	set := 0
	for _, nonZero := range []bool{stmt.Expr != NoExpr, stmt.Scope != NoScope, stmt.Decl != NoDecl, stmt.Assign != NoAssign} {
		if nonZero {
			set++
		}
	}
	if set != 1 {
		v.addf("%s sets %d variant fields, want 1", where, set)
	}

	switch stmt.Kind {
	case StmtExpression:
		v.expr(stmt.Expr, inner)
	case StmtScope:
		v.scope(stmt.Scope, inner)
	case StmtDeclaration:
		v.declaration(stmt.Decl, inner)
	case StmtAssignment:
		v.assignment(stmt.Assign, inner)
	default:
		v.addf("%s has invalid kind %d", where, stmt.Kind)
	}
}

func (v *validator) declaration(id DeclID, want Parent) {
	d := v.tree.Declaration(id)
	if d == nil {
		v.addf("declaration %d does not exist", id)
		return
	}
	v.parent(fmt.Sprintf("declaration %d", id), d.Parent, want)
	if d.Name.Kind != token.Identifier {
		v.addf("declaration %d is named by %s", id, d.Name)
	}
	if d.Type == NoType && d.Value == NoExpr {
		v.addf("declaration %d has neither type nor value", id)
	}
	if d.Type != NoType {
		v.typeRef(d.Type, want)
	}
	if d.Value != NoExpr {
		v.expr(d.Value, want)
	}
}

func (v *validator) assignment(id AssignID, want Parent) {
	a := v.tree.Assignment(id)
	if a == nil {
		v.addf("assignment %d does not exist", id)
		return
	}
	v.parent(fmt.Sprintf("assignment %d", id), a.Parent, want)
	if !a.Operator.Kind.IsCompoundAssignment() {
		v.addf("assignment %d uses operator %s", id, a.Operator)
	}
	v.expr(a.Left, want)
	v.expr(a.Right, want)
}

func (v *validator) expr(id ExprID, want Parent) {
	e := v.tree.Expr(id)
	if e == nil {
		v.addf("expression %d does not exist", id)
		return
	}
	v.parent(fmt.Sprintf("expression %d", id), e.Parent, want)

	switch e.Kind {
	case ExprName:
		if e.Token.Kind != token.Identifier {
			v.addf("name expression %d holds %s", id, e.Token)
		}
	case ExprLiteral:
		if !e.Token.Kind.IsLiteral() {
			v.addf("literal expression %d holds %s", id, e.Token)
		}
	case ExprUnary:
		v.expr(e.Operand, want)
	case ExprBinary:
		v.expr(e.Left, want)
		v.expr(e.Right, want)
	case ExprProcedure:
		v.procedure(e.Procedure, want)
	default:
		v.addf("expression %d has invalid kind %d", id, e.Kind)
	}
}

func (v *validator) procedure(id ProcID, want Parent) {
	p := v.tree.Procedure(id)
	if p == nil {
		v.addf("procedure %d does not exist", id)
		return
	}
	v.parent(fmt.Sprintf("procedure %d", id), p.Parent, want)
	for _, arg := range p.Arguments {
		v.declaration(arg, want)
	}
	if p.ReturnType != NoType {
		v.typeRef(p.ReturnType, want)
	}
	v.scope(p.Body, want)
}

func (v *validator) typeRef(id TypeID, want Parent) {
	ref := v.tree.Type(id)
	if ref == nil {
		v.addf("type %d does not exist", id)
		return
	}
	v.parent(fmt.Sprintf("type %d", id), ref.Parent, want)
	if ref.Kind != TypeName || ref.Name.Kind != token.Identifier {
		v.addf("type %d is not a type name", id)
	}
}

// attachment reports arena nodes without a file back-reference
func (v *validator) attachment() {
	t := v.tree
	for i := 1; i < len(t.scopes); i++ {
		if !t.scopes[i].Parent.Attached() {
			v.addf("scope %d is not attached", i)
		}
	}
	for i := 1; i < len(t.exprs); i++ {
		if !t.exprs[i].Parent.Attached() {
			v.addf("expression %d is not attached", i)
		}
	}
	for i := 1; i < len(t.decls); i++ {
		if !t.decls[i].Parent.Attached() {
			v.addf("declaration %d is not attached", i)
		}
	}
	for i := 1; i < len(t.assignments); i++ {
		if !t.assignments[i].Parent.Attached() {
			v.addf("assignment %d is not attached", i)
		}
	}
	for i := 1; i < len(t.procs); i++ {
		if !t.procs[i].Parent.Attached() {
			v.addf("procedure %d is not attached", i)
		}
	}
	for i := 1; i < len(t.types); i++ {
		if !t.types[i].Parent.Attached() {
			v.addf("type %d is not attached", i)
		}
	}
}
