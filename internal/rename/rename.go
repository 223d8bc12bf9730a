// Package rename implements the fresh-name renamer: the single
// mechanism in this design that prevents variable capture without
// de Bruijn indices. See spec §4.3 and the Design Notes in §9 of
// SPEC_FULL.md for why this replaces index shifting.
package rename

import (
	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
)

// Renamer produces an α-variant of a term: every binder gets a fresh
// ID, and every Ref bound by one of those binders is rewritten to
// match. Free references (to globals, or to binders outside the term
// being renamed) are left untouched.
type Renamer struct {
	ids *core.IDs
	m   map[core.ID]core.ID
}

// New returns a Renamer drawing fresh IDs from ids.
func New(ids *core.IDs) *Renamer {
	return &Renamer{ids: ids, m: make(map[core.ID]core.ID)}
}

// Rename returns a fresh α-variant of tm.
func Rename(ids *core.IDs, tm ast.Term) ast.Term {
	return New(ids).Term(tm)
}

// Term renames a single term using r's (possibly already partially
// populated) substitution map.
func (r *Renamer) Term(tm ast.Term) ast.Term {
	switch t := tm.(type) {
	case ast.Ref:
		if id, ok := r.m[t.V.ID]; ok {
			return ast.Ref{V: core.Var{Text: t.V.Text, ID: id}}
		}
		return t
	case ast.App:
		return ast.App{F: r.Term(t.F), X: r.Term(t.X)}
	case ast.Fn:
		return ast.Fn{P: r.param(t.P), Body: r.Term(t.Body)}
	case ast.FnType:
		return ast.FnType{P: r.param(t.P), Body: r.Term(t.Body)}
	case ast.Univ:
		return t
	}
	panic("lyzh: impossible: unknown term kind in rename")
}

// param allocates a fresh ID for a binder, records the old→new
// mapping, and renames its type under the substitution seen so far.
func (r *Renamer) param(p core.Param[ast.Term]) core.Param[ast.Term] {
	name := r.ids.Rename(p.Name)
	r.m[p.Name.ID] = name.ID
	return core.Param[ast.Term]{Name: name, Type: r.Term(p.Type)}
}
