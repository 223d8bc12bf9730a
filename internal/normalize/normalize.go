// Package normalize implements the NbE-style, substitution-based
// evaluator: it reduces an ast.Term to normal form by β-reduction and
// global-definition expansion, renaming on every substitution to
// avoid capture (spec §4.4). It is the only component allowed to
// diverge, and only on ill-typed input the elaborator never produces
// (see the Termination note in spec §4.4).
package normalize

import (
	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/rename"
)

// Normalizer carries the identifier factory (for renaming on
// substitution), a read-only view of the elaborated globals table,
// and the current value environment built up by nested Subst calls.
type Normalizer struct {
	ids     *core.IDs
	globals ast.Globals
	env     map[core.ID]ast.Term
}

// New returns a Normalizer over an empty environment. Each call site
// in the elaborator constructs its own Normalizer; the environment is
// never shared across unrelated normalizations.
func New(ids *core.IDs, globals ast.Globals) *Normalizer {
	return &Normalizer{ids: ids, globals: globals, env: make(map[core.ID]ast.Term)}
}

// Term normalizes tm once under the current environment.
func (n *Normalizer) Term(tm ast.Term) ast.Term {
	switch t := tm.(type) {
	case ast.Ref:
		x, ok := n.env[t.V.ID]
		if !ok {
			return t
		}
		// The substituted term was built in a different scope; it
		// must be renamed fresh before it is re-entered here, or its
		// own binders could capture ambient ones.
		return n.Term(rename.Rename(n.ids, x))
	case ast.App:
		f := n.Term(t.F)
		x := n.Term(t.X)
		if fn, ok := f.(ast.Fn); ok {
			return n.Subst(fn.P.Name, x, fn.Body)
		}
		return ast.App{F: f, X: x}
	case ast.Fn:
		return ast.Fn{P: n.Param(t.P), Body: n.Term(t.Body)}
	case ast.FnType:
		return ast.FnType{P: n.Param(t.P), Body: n.Term(t.Body)}
	case ast.Univ:
		return t
	}
	panic("lyzh: impossible: unknown term kind in normalize")
}

// Subst extends the environment with v.ID ↦ x and normalizes tm under
// it. This is the operation that realizes β-reduction: the caller
// typically passes a λ's parameter and the argument it was applied
// to.
func (n *Normalizer) Subst(v core.Var, x ast.Term, tm ast.Term) ast.Term {
	n.env[v.ID] = x
	return n.Term(tm)
}

// Apply simulates applying f to a sequence of arguments, performing β
// where possible and leaving a stuck application otherwise.
func (n *Normalizer) Apply(f ast.Term, xs ...ast.Term) ast.Term {
	for _, x := range xs {
		f = n.Term(ast.App{F: f, X: x})
	}
	return f
}

// Param normalizes the type inside a parameter, leaving its name
// untouched.
func (n *Normalizer) Param(p core.Param[ast.Term]) core.Param[ast.Term] {
	return core.Param[ast.Term]{Name: p.Name, Type: n.Term(p.Type)}
}
