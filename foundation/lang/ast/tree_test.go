// File: tree_test.go
// Title: Quill Syntax Tree Unit Tests
// Description: Tests for arena construction, accessors, walking, stats and
//              structural validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tree tests

package ast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	mdwerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/lang/token"
)

func ident(name string) token.Token {
	return token.Token{Kind: token.Identifier, Text: name, Length: len(name)}
}

func integer(v uint64) token.Token {
	return token.Token{Kind: token.Integer, Int: v, Length: 1}
}

// buildSample builds the tree for
//
//	x :: 1 + 2;
//	{ f :: (a: i32) { a; } }
func buildSample() (*Tree, FileID) {
	t := NewTree()
	file := t.AddFile(File{Path: "sample.ql"})
	top := t.ReserveScope(Parent{File: file})
	t.SetFileScope(file, top)
	in := Parent{File: file, Scope: top}

	one := t.AddExpr(Expr{Kind: ExprLiteral, Parent: in, Token: integer(1)})
	two := t.AddExpr(Expr{Kind: ExprLiteral, Parent: in, Token: integer(2)})
	sum := t.AddExpr(Expr{Kind: ExprBinary, Parent: in, Token: token.Token{Kind: token.Plus}, Left: one, Right: two})
	x := t.AddDeclaration(Declaration{Parent: in, Name: ident("x"), Value: sum, Constant: true})
	t.AppendStatement(top, Stmt{Kind: StmtDeclaration, Parent: in, Decl: x})

	nested := t.ReserveScope(in)
	inNested := Parent{File: file, Scope: nested}
	i32 := t.AddType(TypeRef{Kind: TypeName, Parent: inNested, Name: ident("i32")})
	arg := t.AddDeclaration(Declaration{Parent: inNested, Name: ident("a"), Type: i32})
	body := t.ReserveScope(inNested)
	inBody := Parent{File: file, Scope: body}
	use := t.AddExpr(Expr{Kind: ExprName, Parent: inBody, Token: ident("a")})
	t.AppendStatement(body, Stmt{Kind: StmtExpression, Parent: inBody, Expr: use})
	proc := t.AddProcedure(Procedure{Parent: inNested, Arguments: []DeclID{arg}, Body: body})
	pexpr := t.AddExpr(Expr{Kind: ExprProcedure, Parent: inNested, Procedure: proc})
	f := t.AddDeclaration(Declaration{Parent: inNested, Name: ident("f"), Value: pexpr, Constant: true})
	t.AppendStatement(nested, Stmt{Kind: StmtDeclaration, Parent: inNested, Decl: f})
	t.AppendStatement(top, Stmt{Kind: StmtScope, Parent: in, Scope: nested})

	return t, file
}

func TestTree_ReservedZero(t *testing.T) {
	tree := NewTree()

	if tree.File(NoFile) != nil || tree.Scope(NoScope) != nil || tree.Expr(NoExpr) != nil {
		t.Error("zero IDs must resolve to nil")
	}
	if tree.Declaration(NoDecl) != nil || tree.Assignment(NoAssign) != nil ||
		tree.Procedure(NoProc) != nil || tree.Type(NoType) != nil {
		t.Error("zero IDs must resolve to nil")
	}
	if tree.Expr(42) != nil {
		t.Error("out of range IDs must resolve to nil")
	}
	if len(tree.Files()) != 0 || tree.Root() != NoFile {
		t.Error("new tree should have no files")
	}

	id := tree.AddExpr(Expr{Kind: ExprName})
	if id == NoExpr {
		t.Error("first expression must not get the reserved ID")
	}
}

func TestTree_RootIsFirstFile(t *testing.T) {
	tree := NewTree()
	first := tree.AddFile(File{Path: "a.ql"})
	tree.AddFile(File{Path: "b.ql"})

	if tree.Root() != first {
		t.Errorf("Root() = %d, want %d", tree.Root(), first)
	}
	if got := tree.Files(); !cmp.Equal(got, []FileID{1, 2}) {
		t.Errorf("Files() = %v", got)
	}
}

func TestTree_DiscardExpr(t *testing.T) {
	tree := NewTree()
	a := tree.AddExpr(Expr{Kind: ExprName, Token: ident("a")})
	b := tree.AddExpr(Expr{Kind: ExprName, Token: ident("b")})

	if tree.DiscardExpr(a) {
		t.Error("only the most recent expression can be discarded")
	}
	if !tree.DiscardExpr(b) {
		t.Fatal("DiscardExpr(last) should succeed")
	}
	if tree.Expr(b) != nil {
		t.Error("discarded expression is still reachable")
	}
	if c := tree.AddExpr(Expr{Kind: ExprLiteral}); c != b {
		t.Errorf("slot should be reused, got %d want %d", c, b)
	}
	if tree.DiscardExpr(NoExpr) {
		t.Error("NoExpr cannot be discarded")
	}
}

func TestTree_Enclosing(t *testing.T) {
	tree, file := buildSample()
	top := tree.File(file).Scope

	body := tree.Procedure(1).Body

	got := tree.Enclosing(body)
	want := []ScopeID{body, 2, top}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Enclosing mismatch (-want +got):\n%s", diff)
	}
	if tree.Enclosing(NoScope) != nil {
		t.Error("Enclosing(NoScope) should be empty")
	}
}

func TestTree_Stats(t *testing.T) {
	tree, _ := buildSample()

	got, err := tree.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := Stats{
		Files:        1,
		Scopes:       3,
		Statements:   4,
		Declarations: 3,
		Expressions:  5,
		Procedures:   1,
		Types:        1,
		MaxDepth:     3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}
}

type orderVisitor struct {
	BaseVisitor
	names []string
	skip  bool
}

func (o *orderVisitor) VisitDeclaration(_ DeclID, d *Declaration) error {
	o.names = append(o.names, d.Name.Text)
	return nil
}

func (o *orderVisitor) VisitExpr(_ ExprID, e *Expr) error {
	if e.Kind == ExprName {
		o.names = append(o.names, "use:"+e.Token.Text)
	}
	if o.skip && e.Kind == ExprProcedure {
		return SkipChildren
	}
	return nil
}

func TestWalk_Order(t *testing.T) {
	tree, _ := buildSample()

	v := &orderVisitor{}
	if err := Walk(tree, v); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if diff := cmp.Diff([]string{"x", "f", "a", "use:a"}, v.names); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}

	skipping := &orderVisitor{skip: true}
	if err := Walk(tree, skipping); err != nil {
		t.Fatalf("Walk() with SkipChildren error = %v", err)
	}
	if diff := cmp.Diff([]string{"x", "f"}, skipping.names); diff != "" {
		t.Errorf("SkipChildren mismatch (-want +got):\n%s", diff)
	}
}

type stopVisitor struct {
	BaseVisitor
	calls int
}

var errStop = errors.New("stop")

func (s *stopVisitor) VisitExpr(ExprID, *Expr) error {
	s.calls++
	return errStop
}

func TestWalk_StopsOnError(t *testing.T) {
	tree, _ := buildSample()

	v := &stopVisitor{}
	if err := Walk(tree, v); !errors.Is(err, errStop) {
		t.Fatalf("Walk() error = %v, want errStop", err)
	}
	if v.calls != 1 {
		t.Errorf("visitor called %d times after error", v.calls)
	}
}

func TestWalk_Dangling(t *testing.T) {
	tree, file := buildSample()
	top := tree.Scope(tree.File(file).Scope)
	top.Statements = append(top.Statements, Stmt{Kind: StmtExpression, Parent: top.Statements[0].Parent, Expr: 99})

	err := Walk(tree, BaseVisitor{})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidTree) {
		t.Errorf("Walk() error = %v, want INVALID_TREE", err)
	}
}

func TestValidate_Sample(t *testing.T) {
	tree, _ := buildSample()
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tree)
	}{
		{"empty tree", func(t *Tree) { *t = *NewTree() }},
		{"declaration without type or value", func(t *Tree) {
			t.Declaration(1).Value = NoExpr
		}},
		{"wrong parent scope", func(t *Tree) {
			t.Expr(1).Parent.Scope = 3
		}},
		{"detached node", func(t *Tree) {
			t.AddExpr(Expr{Kind: ExprName, Token: ident("orphan")})
		}},
		{"plain operator in assignment", func(t *Tree) {
			in := Parent{File: 1, Scope: 1}
			left := t.AddExpr(Expr{Kind: ExprName, Parent: in, Token: ident("x")})
			right := t.AddExpr(Expr{Kind: ExprLiteral, Parent: in, Token: integer(1)})
			a := t.AddAssignment(Assignment{Parent: in, Left: left, Operator: token.Token{Kind: token.Plus}, Right: right})
			t.AppendStatement(1, Stmt{Kind: StmtAssignment, Parent: in, Assign: a})
		}},
		{"statement with two variants", func(t *Tree) {
			t.Scope(1).Statements[0].Expr = 1
		}},
		{"shared scope", func(t *Tree) {
			in := Parent{File: 1, Scope: 1}
			t.AppendStatement(1, Stmt{Kind: StmtScope, Parent: in, Scope: 2})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := buildSample()
			tt.mutate(tree)

			err := tree.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidTree) {
				t.Errorf("code = %v, want INVALID_TREE", mdwerror.GetCode(err))
			}
			if mdwerror.GetSeverity(err) != mdwerror.SeverityCritical {
				t.Errorf("severity = %v, want critical", mdwerror.GetSeverity(err))
			}
		})
	}
}

func TestParent_Attached(t *testing.T) {
	if (Parent{}).Attached() {
		t.Error("zero parent must not be attached")
	}
	if !(Parent{File: 1}).Attached() {
		t.Error("parent with a file must be attached")
	}
}

func TestKindStrings(t *testing.T) {
	if StmtAssignment.String() != "Assignment" || StmtKind(0).String() != "Invalid" {
		t.Error("StmtKind.String mismatch")
	}
	if ExprProcedure.String() != "Procedure" || ExprKind(9).String() != "Invalid" {
		t.Error("ExprKind.String mismatch")
	}
	if TypeName.String() != "Name" {
		t.Error("TypeKind.String mismatch")
	}
}
