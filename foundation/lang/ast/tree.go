// File: tree.go
// Title: Quill Syntax Tree Arena
// Description: Arena storage for syntax tree nodes. Each node kind has its
//              own slice; index 0 of every slice is a reserved placeholder
//              so that the zero ID reads as "absent". Scopes are reserved
//              before their statements are parsed and filled afterwards.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial arena implementation

package ast

// Tree owns every node of one or more parsed files
type Tree struct {
	root        FileID
	files       []File
	scopes      []Scope
	exprs       []Expr
	decls       []Declaration
	assignments []Assignment
	procs       []Procedure
	types       []TypeRef
}

// NewTree creates an empty tree with the reserved zero slots in place
func NewTree() *Tree {
	return &Tree{
		files:       make([]File, 1),
		scopes:      make([]Scope, 1),
		exprs:       make([]Expr, 1),
		decls:       make([]Declaration, 1),
		assignments: make([]Assignment, 1),
		procs:       make([]Procedure, 1),
		types:       make([]TypeRef, 1),
	}
}

// AddFile appends a file node. Its Scope is set once the top-level scope
// has been reserved.
func (t *Tree) AddFile(file File) FileID {
	t.files = append(t.files, file)
	id := FileID(len(t.files) - 1)
	if t.root == NoFile {
		t.root = id
	}
	return id
}

// Root returns the first file added to the tree
func (t *Tree) Root() FileID {
	return t.root
}

// SetFileScope links a file to its top-level scope
func (t *Tree) SetFileScope(id FileID, scope ScopeID) {
	if f := t.File(id); f != nil {
		f.Scope = scope
	}
}

// ReserveScope allocates an empty scope slot so that nested nodes can name
// it as their parent before its statements exist
func (t *Tree) ReserveScope(parent Parent) ScopeID {
	t.scopes = append(t.scopes, Scope{Parent: parent})
	return ScopeID(len(t.scopes) - 1)
}

// AppendStatement adds a statement to a reserved scope
func (t *Tree) AppendStatement(scope ScopeID, stmt Stmt) {
	if s := t.Scope(scope); s != nil {
		s.Statements = append(s.Statements, stmt)
	}
}

// AddExpr appends an expression node
func (t *Tree) AddExpr(expr Expr) ExprID {
	t.exprs = append(t.exprs, expr)
	return ExprID(len(t.exprs) - 1)
}

// DiscardExpr removes the most recently added expression. It is a no-op
// unless id is the last expression, so only freshly built and still
// unreferenced nodes can be dropped.
func (t *Tree) DiscardExpr(id ExprID) bool {
	if id == NoExpr || int(id) != len(t.exprs)-1 {
		return false
	}
	t.exprs = t.exprs[:id]
	return true
}

// AddDeclaration appends a declaration node
func (t *Tree) AddDeclaration(decl Declaration) DeclID {
	t.decls = append(t.decls, decl)
	return DeclID(len(t.decls) - 1)
}

// AddAssignment appends an assignment node
func (t *Tree) AddAssignment(assign Assignment) AssignID {
	t.assignments = append(t.assignments, assign)
	return AssignID(len(t.assignments) - 1)
}

// AddProcedure appends a procedure node
func (t *Tree) AddProcedure(proc Procedure) ProcID {
	t.procs = append(t.procs, proc)
	return ProcID(len(t.procs) - 1)
}

// AddType appends a type reference node
func (t *Tree) AddType(ref TypeRef) TypeID {
	t.types = append(t.types, ref)
	return TypeID(len(t.types) - 1)
}

// Accessors return nil for the reserved zero ID and for IDs out of range.
// The returned pointers are invalidated by the next Add of the same kind.

func (t *Tree) File(id FileID) *File {
	if id == NoFile || int(id) >= len(t.files) {
		return nil
	}
	return &t.files[id]
}

func (t *Tree) Scope(id ScopeID) *Scope {
	if id == NoScope || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

func (t *Tree) Expr(id ExprID) *Expr {
	if id == NoExpr || int(id) >= len(t.exprs) {
		return nil
	}
	return &t.exprs[id]
}

func (t *Tree) Declaration(id DeclID) *Declaration {
	if id == NoDecl || int(id) >= len(t.decls) {
		return nil
	}
	return &t.decls[id]
}

func (t *Tree) Assignment(id AssignID) *Assignment {
	if id == NoAssign || int(id) >= len(t.assignments) {
		return nil
	}
	return &t.assignments[id]
}

func (t *Tree) Procedure(id ProcID) *Procedure {
	if id == NoProc || int(id) >= len(t.procs) {
		return nil
	}
	return &t.procs[id]
}

func (t *Tree) Type(id TypeID) *TypeRef {
	if id == NoType || int(id) >= len(t.types) {
		return nil
	}
	return &t.types[id]
}

// Files returns the IDs of all files in insertion order
func (t *Tree) Files() []FileID {
	ids := make([]FileID, 0, len(t.files)-1)
	for i := 1; i < len(t.files); i++ {
		ids = append(ids, FileID(i))
	}
	return ids
}

// Enclosing returns the chain of scopes from id outwards to the top-level
// scope of its file, id first
func (t *Tree) Enclosing(id ScopeID) []ScopeID {
	var chain []ScopeID
	for s := t.Scope(id); s != nil; s = t.Scope(id) {
		chain = append(chain, id)
		if len(chain) > len(t.scopes) {
			break // cycle; Validate reports it
		}
		id = s.Parent.Scope
	}
	return chain
}
