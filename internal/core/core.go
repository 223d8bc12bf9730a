// Package core holds the data types shared by every stage of the
// pipeline: source locations, identifiers, variables, parameters and
// top-level definitions. Nothing in this package knows about concrete
// or abstract syntax; both the cst and ast packages are built on top
// of it.
package core

import "fmt"

// Loc is a source location: a byte offset plus the 1-based line and
// column it corresponds to. Locations are attached to every concrete
// syntax node and dropped once a term reaches the abstract syntax
// tree — the elaborator never needs to report a position for a Term,
// only for the Expr it came from.
type Loc struct {
	Pos int
	Ln  int
	Col int
}

// String renders a location as "line:column", the prefix used by
// every diagnostic in this tool.
func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Ln, l.Col)
}

// NextLine advances past a newline rune: the line counter increases
// and the column resets to 1.
func (l *Loc) NextLine() {
	l.Pos++
	l.Ln++
	l.Col = 1
}

// NextColumn advances past an ordinary rune within the current line.
func (l *Loc) NextColumn() {
	l.Pos++
	l.Col++
}

// ID is an opaque, globally unique binder identity. Two IDs are equal
// iff they were produced by the same call to IDs.Next. IDs are never
// reused and never compared for ordering by any component other than
// the factory itself.
type ID int

// Var pairs a user-written name with the ID of the binder it denotes.
// Equality for binding purposes is on ID alone; Text exists only for
// diagnostics and for printing terms back out.
type Var struct {
	Text string
	ID   ID
}

func (v Var) String() string { return v.Text }

// IDs is the identifier factory: a single monotonically increasing
// counter, starting at 1, owned by the pipeline driver and passed
// explicitly to every stage that needs to mint a fresh binder. It is
// not safe for concurrent use — the pipeline is single-threaded by
// design (see the package-level docs in internal/pipeline).
type IDs struct {
	n ID
}

// Next allocates and returns a fresh ID.
func (ids *IDs) Next() ID {
	ids.n++
	return ids.n
}

// Rename returns a copy of v carrying a freshly allocated ID and the
// same Text. It is the single operation the renamer (internal/rename)
// and the elaborator's global-instantiation step build on.
func (ids *IDs) Rename(v Var) Var {
	return Var{Text: v.Text, ID: ids.Next()}
}

// Param is a binder together with the type expression it was
// declared at. T is cst.Expr for parameters still in concrete syntax
// and ast.Term once the elaborator has checked them.
type Param[T any] struct {
	Name Var
	Type T
}

func (p Param[T]) String() string {
	return fmt.Sprintf("(%s: %v)", p.Name, p.Type)
}

// Def is a single top-level function definition: a name, its ordered
// parameters, a declared return type, and a defining body. A source
// file is an ordered slice of Defs; T is cst.Expr before elaboration
// and ast.Term after.
type Def[T any] struct {
	Loc    Loc
	Name   Var
	Params []Param[T]
	Ret    T
	Body   T
}
