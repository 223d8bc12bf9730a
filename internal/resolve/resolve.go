// Package resolve walks a concrete syntax tree and turns every
// Unresolved variable reference into a Resolved one carrying the ID
// of the binder it refers to. It is the component that establishes
// the binding invariants the elaborator depends on (spec §1, §4.2).
package resolve

import (
	"fmt"

	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/cst"
)

// UnresolvedVariableError reports a reference with no binder in
// scope at the reference site.
type UnresolvedVariableError struct {
	Loc  core.Loc
	Text string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("%s: unresolved variable '%s'", e.Loc, e.Text)
}

// Location implements diagnostics.Located.
func (e *UnresolvedVariableError) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *UnresolvedVariableError) Reason() string {
	return fmt.Sprintf("unresolved variable '%s'", e.Text)
}

// DuplicateNameError reports a second top-level definition sharing an
// already-declared name.
type DuplicateNameError struct {
	Loc  core.Loc
	Text string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate name '%s'", e.Loc, e.Text)
}

// Location implements diagnostics.Located.
func (e *DuplicateNameError) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *DuplicateNameError) Reason() string {
	return fmt.Sprintf("duplicate name '%s'", e.Text)
}

// Resolver holds the mutable textual scope map (most recent binder
// per name) and the set of declared top-level names, following the
// teacher's guard/restore scoping idiom rather than a persistent
// environment passed by value (spec §9 discusses both as equally
// valid; this tool keeps the mutable-map style to match the original
// Python implementation it was distilled from).
type Resolver struct {
	ctx   map[string]core.Var
	names map[string]bool
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{ctx: make(map[string]core.Var), names: make(map[string]bool)}
}

// Resolve resolves every definition in ds in order, returning the
// same definitions with every reference rewritten to cst.Resolved, or
// the first error encountered.
func (r *Resolver) Resolve(ds []core.Def[cst.Expr]) ([]core.Def[cst.Expr], error) {
	out := make([]core.Def[cst.Expr], len(ds))
	for i, d := range ds {
		resolved, err := r.resolveDef(d)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *Resolver) resolveDef(d core.Def[cst.Expr]) (core.Def[cst.Expr], error) {
	var recoverable []core.Var
	var removable []core.Var

	params := make([]core.Param[cst.Expr], len(d.Params))
	for i, p := range d.Params {
		old, had := r.insert(p.Name)
		if had {
			recoverable = append(recoverable, old)
		} else {
			removable = append(removable, p.Name)
		}
		typ, err := r.resolveExpr(p.Type)
		if err != nil {
			return core.Def[cst.Expr]{}, err
		}
		params[i] = core.Param[cst.Expr]{Name: p.Name, Type: typ}
	}

	ret, err := r.resolveExpr(d.Ret)
	if err != nil {
		return core.Def[cst.Expr]{}, err
	}
	body, err := r.resolveExpr(d.Body)
	if err != nil {
		return core.Def[cst.Expr]{}, err
	}

	for _, v := range removable {
		delete(r.ctx, v.Text)
	}
	for _, v := range recoverable {
		r.insert(v)
	}

	if r.names[d.Name.Text] {
		return core.Def[cst.Expr]{}, &DuplicateNameError{Loc: d.Loc, Text: d.Name.Text}
	}
	r.names[d.Name.Text] = true
	r.insert(d.Name)

	return core.Def[cst.Expr]{Loc: d.Loc, Name: d.Name, Params: params, Ret: ret, Body: body}, nil
}

func (r *Resolver) resolveExpr(e cst.Expr) (cst.Expr, error) {
	switch ex := e.(type) {
	case cst.Unresolved:
		bound, ok := r.ctx[ex.V.Text]
		if !ok {
			return nil, &UnresolvedVariableError{Loc: ex.Loc, Text: ex.V.Text}
		}
		return cst.Resolved{Loc: ex.Loc, V: bound}, nil
	case cst.Fn:
		body, err := r.guard(ex.V, ex.Body)
		if err != nil {
			return nil, err
		}
		return cst.Fn{Loc: ex.Loc, V: ex.V, Body: body}, nil
	case cst.App:
		f, err := r.resolveExpr(ex.F)
		if err != nil {
			return nil, err
		}
		x, err := r.resolveExpr(ex.X)
		if err != nil {
			return nil, err
		}
		return cst.App{Loc: ex.Loc, F: f, X: x}, nil
	case cst.FnType:
		typ, err := r.resolveExpr(ex.P.Type)
		if err != nil {
			return nil, err
		}
		body, err := r.guard(ex.P.Name, ex.Body)
		if err != nil {
			return nil, err
		}
		return cst.FnType{Loc: ex.Loc, P: core.Param[cst.Expr]{Name: ex.P.Name, Type: typ}, Body: body}, nil
	case cst.Univ:
		return ex, nil
	case cst.Resolved:
		panic("lyzh: impossible: resolved reference seen by resolver")
	}
	panic("lyzh: impossible: unknown expression kind in resolve")
}

// guard inserts v into scope, resolves e under it, then restores the
// scope to what it was before v was inserted — reinstating whichever
// binder v shadowed, or deleting the entry if it shadowed nothing.
func (r *Resolver) guard(v core.Var, e cst.Expr) (cst.Expr, error) {
	old, had := r.insert(v)
	ret, err := r.resolveExpr(e)
	if had {
		r.insert(old)
	} else {
		delete(r.ctx, v.Text)
	}
	return ret, err
}

// insert binds v.Text to v, returning whatever was previously bound
// (and whether anything was).
func (r *Resolver) insert(v core.Var) (core.Var, bool) {
	old, had := r.ctx[v.Text]
	r.ctx[v.Text] = v
	return old, had
}
