// Package unify implements the conversion checker: structural
// α-equivalence between two already-normalized terms (spec §4.5).
package unify

import (
	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/normalize"
)

// Unifier holds what a fresh Normalizer needs to align bound-variable
// identities when comparing two binders (renaming one side's name
// into the other's).
type Unifier struct {
	ids     *core.IDs
	globals ast.Globals
}

// New returns a Unifier backed by ids and globals, used to construct
// the Normalizer each Fn/FnType comparison needs.
func New(ids *core.IDs, globals ast.Globals) *Unifier {
	return &Unifier{ids: ids, globals: globals}
}

// Unify reports whether lhs and rhs are the same term up to
// α-equivalence. Both arguments are expected to already be in normal
// form; Unify does not normalize on the caller's behalf.
func (u *Unifier) Unify(lhs, rhs ast.Term) bool {
	switch l := lhs.(type) {
	case ast.Ref:
		r, ok := rhs.(ast.Ref)
		return ok && l.V.Text == r.V.Text && l.V.ID == r.V.ID
	case ast.App:
		r, ok := rhs.(ast.App)
		return ok && u.Unify(l.F, r.F) && u.Unify(l.X, r.X)
	case ast.Fn:
		r, ok := rhs.(ast.Fn)
		if !ok {
			return false
		}
		// λ parameter types are a checking artifact: by the time two
		// λs are compared, the surrounding Π has already been
		// unified, so both sides' parameter types agree by
		// construction (spec §4.5, §9).
		return u.Unify(l.Body, u.align(l.P.Name, r.P.Name, r.Body))
	case ast.FnType:
		r, ok := rhs.(ast.FnType)
		if !ok {
			return false
		}
		if !u.Unify(l.P.Type, r.P.Type) {
			return false
		}
		return u.Unify(l.Body, u.align(l.P.Name, r.P.Name, r.Body))
	case ast.Univ:
		_, ok := rhs.(ast.Univ)
		return ok
	}
	panic("lyzh: impossible: unknown term kind in unify")
}

// align renames the binder r to l inside body. When both sides already
// share the binder (as in unify(t, t)) body is returned unchanged:
// mapping a variable to a reference to itself would send the
// normalizer's Ref rule into endless re-substitution.
func (u *Unifier) align(l, r core.Var, body ast.Term) ast.Term {
	if l.ID == r.ID {
		return body
	}
	return u.nf().Subst(r, ast.Ref{V: l}, body)
}

func (u *Unifier) nf() *normalize.Normalizer {
	return normalize.New(u.ids, u.globals)
}
