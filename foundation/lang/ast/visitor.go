// File: visitor.go
// Title: Quill Syntax Tree Visitor
// Description: Visitor interface and a pre-order Walk over the arena tree.
//              Visit methods may return SkipChildren to prune a subtree or
//              any other error to stop the walk.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-19 v0.2.0: ID-based visitor over the arena tree, error returns

package ast

import (
	"errors"

	mdwerror "github.com/msto63/quill/foundation/core/error"
)

// SkipChildren may be returned from a Visit method to skip the children of
// the current node. It is not reported as an error by Walk.
var SkipChildren = errors.New("skip children")

// Visitor receives every node of a tree in source order, parents first
type Visitor interface {
	VisitFile(id FileID, file *File) error
	VisitScope(id ScopeID, scope *Scope) error
	VisitStatement(stmt *Stmt) error
	VisitDeclaration(id DeclID, decl *Declaration) error
	VisitAssignment(id AssignID, assign *Assignment) error
	VisitExpr(id ExprID, expr *Expr) error
	VisitProcedure(id ProcID, proc *Procedure) error
	VisitType(id TypeID, ref *TypeRef) error
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed it in concrete visitors to only override what is needed.
type BaseVisitor struct{}

func (BaseVisitor) VisitFile(FileID, *File) error { return nil }
func (BaseVisitor) VisitScope(ScopeID, *Scope) error { return nil }
func (BaseVisitor) VisitStatement(*Stmt) error { return nil }
func (BaseVisitor) VisitDeclaration(DeclID, *Declaration) error { return nil }
func (BaseVisitor) VisitAssignment(AssignID, *Assignment) error { return nil }
func (BaseVisitor) VisitExpr(ExprID, *Expr) error { return nil }
func (BaseVisitor) VisitProcedure(ProcID, *Procedure) error { return nil }
func (BaseVisitor) VisitType(TypeID, *TypeRef) error { return nil }

// Walk visits every file of the tree
func Walk(t *Tree, v Visitor) error {
	for _, id := range t.Files() {
		if err := WalkFile(t, id, v); err != nil {
			return err
		}
	}
	return nil
}

// WalkFile visits one file and everything below it
func WalkFile(t *Tree, id FileID, v Visitor) error {
	w := walker{tree: t, visitor: v}
	return w.file(id)
}

type walker struct {
	tree    *Tree
	visitor Visitor
}

// visit runs a Visit call and reports whether to descend
func visit(err error) (bool, error) {
	if errors.Is(err, SkipChildren) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func dangling(kind string, id uint32) error {
	return mdwerror.Newf("dangling %s reference %d", kind, id).
		WithCode(mdwerror.CodeInvalidTree).
		WithOperation("ast.Walk")
}

func (w *walker) file(id FileID) error {
	f := w.tree.File(id)
	if f == nil {
		return dangling("file", uint32(id))
	}
	descend, err := visit(w.visitor.VisitFile(id, f))
	if !descend {
		return err
	}
	return w.scope(f.Scope)
}

func (w *walker) scope(id ScopeID) error {
	s := w.tree.Scope(id)
	if s == nil {
		return dangling("scope", uint32(id))
	}
	descend, err := visit(w.visitor.VisitScope(id, s))
	if !descend {
		return err
	}
	for i := range s.Statements {
		if err := w.statement(&s.Statements[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) statement(stmt *Stmt) error {
	descend, err := visit(w.visitor.VisitStatement(stmt))
	if !descend {
		return err
	}
	switch stmt.Kind {
	case StmtExpression:
		return w.expr(stmt.Expr)
	case StmtScope:
		return w.scope(stmt.Scope)
	case StmtDeclaration:
		return w.declaration(stmt.Decl)
	case StmtAssignment:
		return w.assignment(stmt.Assign)
	}
	return nil
}

func (w *walker) declaration(id DeclID) error {
	d := w.tree.Declaration(id)
	if d == nil {
		return dangling("declaration", uint32(id))
	}
	descend, err := visit(w.visitor.VisitDeclaration(id, d))
	if !descend {
		return err
	}
	if d.Type != NoType {
		if err := w.typeRef(d.Type); err != nil {
			return err
		}
	}
	if d.Value != NoExpr {
		return w.expr(d.Value)
	}
	return nil
}

func (w *walker) assignment(id AssignID) error {
	a := w.tree.Assignment(id)
	if a == nil {
		return dangling("assignment", uint32(id))
	}
	descend, err := visit(w.visitor.VisitAssignment(id, a))
	if !descend {
		return err
	}
	if err := w.expr(a.Left); err != nil {
		return err
	}
	return w.expr(a.Right)
}

func (w *walker) expr(id ExprID) error {
	e := w.tree.Expr(id)
	if e == nil {
		return dangling("expression", uint32(id))
	}
	descend, err := visit(w.visitor.VisitExpr(id, e))
	if !descend {
		return err
	}
	switch e.Kind {
	case ExprUnary:
		return w.expr(e.Operand)
	case ExprBinary:
		if err := w.expr(e.Left); err != nil {
			return err
		}
		return w.expr(e.Right)
	case ExprProcedure:
		return w.procedure(e.Procedure)
	}
	return nil
}

func (w *walker) procedure(id ProcID) error {
	p := w.tree.Procedure(id)
	if p == nil {
		return dangling("procedure", uint32(id))
	}
	descend, err := visit(w.visitor.VisitProcedure(id, p))
	if !descend {
		return err
	}
	for _, arg := range p.Arguments {
		if err := w.declaration(arg); err != nil {
			return err
		}
	}
	if p.ReturnType != NoType {
		if err := w.typeRef(p.ReturnType); err != nil {
			return err
		}
	}
	return w.scope(p.Body)
}

func (w *walker) typeRef(id TypeID) error {
	ref := w.tree.Type(id)
	if ref == nil {
		return dangling("type", uint32(id))
	}
	_, err := visit(w.visitor.VisitType(id, ref))
	return err
}

// Stats summarises the nodes reachable from the files of a tree
type Stats struct {
	Files        int `json:"files" yaml:"files"`
	Scopes       int `json:"scopes" yaml:"scopes"`
	Statements   int `json:"statements" yaml:"statements"`
	Declarations int `json:"declarations" yaml:"declarations"`
	Assignments  int `json:"assignments" yaml:"assignments"`
	Expressions  int `json:"expressions" yaml:"expressions"`
	Procedures   int `json:"procedures" yaml:"procedures"`
	Types        int `json:"types" yaml:"types"`
	MaxDepth     int `json:"max_depth" yaml:"max_depth"` // Deepest scope nesting, top level = 1
}

type statsVisitor struct {
	BaseVisitor
	tree  *Tree
	stats Stats
}

func (s *statsVisitor) VisitFile(FileID, *File) error {
	s.stats.Files++
	return nil
}

func (s *statsVisitor) VisitScope(id ScopeID, _ *Scope) error {
	s.stats.Scopes++
	if depth := len(s.tree.Enclosing(id)); depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}
	return nil
}

func (s *statsVisitor) VisitStatement(*Stmt) error {
	s.stats.Statements++
	return nil
}

func (s *statsVisitor) VisitDeclaration(DeclID, *Declaration) error {
	s.stats.Declarations++
	return nil
}

func (s *statsVisitor) VisitAssignment(AssignID, *Assignment) error {
	s.stats.Assignments++
	return nil
}

func (s *statsVisitor) VisitExpr(ExprID, *Expr) error {
	s.stats.Expressions++
	return nil
}

func (s *statsVisitor) VisitProcedure(ProcID, *Procedure) error {
	s.stats.Procedures++
	return nil
}

func (s *statsVisitor) VisitType(TypeID, *TypeRef) error {
	s.stats.Types++
	return nil
}

// Stats counts the reachable nodes of the tree
func (t *Tree) Stats() (Stats, error) {
	v := &statsVisitor{tree: t}
	if err := Walk(t, v); err != nil {
		return Stats{}, err
	}
	return v.stats, nil
}
