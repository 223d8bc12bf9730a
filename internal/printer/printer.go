// Package printer renders elaborated definitions back into the
// source-like text form spec.md §6 specifies. It is organized the
// way the teacher's internal/prettyprinter package is — one method
// per node kind, returning a plain string — but it is a fresh,
// much smaller printer: this system has no VM, LSP hover, or
// formatter consumers to share a visitor interface with, so term
// printing is a straightforward recursive function, not an
// ast.Visitor/Accept double-dispatch (SPEC_FULL.md §4.9).
package printer

import (
	"strings"

	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
)

// Term renders a single term: Ref -> its text, Univ -> "type",
// Fn(p,b) -> "|p| { b }", FnType(p,b) -> "(p) -> b",
// App(f,x) -> "(f x)".
func Term(t ast.Term) string {
	switch tm := t.(type) {
	case ast.Ref:
		return tm.V.Text
	case ast.Univ:
		return "type"
	case ast.Fn:
		return "|" + tm.P.Name.Text + "| { " + Term(tm.Body) + " }"
	case ast.FnType:
		return Param(tm.P) + " -> " + Term(tm.Body)
	case ast.App:
		return "(" + Term(tm.F) + " " + Term(tm.X) + ")"
	}
	panic("lyzh: impossible: unknown term kind in printer")
}

// Param renders a single parameter as "(name: type)".
func Param(p core.Param[ast.Term]) string {
	return "(" + p.Name.Text + ": " + Term(p.Type) + ")"
}

// Def renders one elaborated definition in the exact form spec.md §6
// requires:
//
//	fn <name> (<p1>: <T1>) (<p2>: <T2>) ... -> <ret> {
//	<TAB><body>
//	}
func Def(d core.Def[ast.Term]) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(d.Name.Text)
	for _, p := range d.Params {
		b.WriteByte(' ')
		b.WriteString(Param(p))
	}
	b.WriteString(" -> ")
	b.WriteString(Term(d.Ret))
	b.WriteString(" {\n\t")
	b.WriteString(Term(d.Body))
	b.WriteString("\n}")
	return b.String()
}

// Defs renders a whole file's worth of definitions, one per
// blank-line-separated block, matching §6's "one per blank-line-
// separated block" output contract.
func Defs(ds []core.Def[ast.Term]) string {
	blocks := make([]string, len(ds))
	for i, d := range ds {
		blocks[i] = Def(d)
	}
	return strings.Join(blocks, "\n\n")
}
