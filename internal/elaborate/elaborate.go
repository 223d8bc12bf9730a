// Package elaborate implements the bidirectional, Martin-Löf-style
// type checker described in spec §4.6: check (type given) and infer
// (type produced) cooperate to turn a resolved concrete syntax tree
// into a well-typed abstract syntax tree.
package elaborate

import (
	"fmt"

	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/cst"
	"github.com/anqurvanillapy/lyzh/internal/normalize"
	"github.com/anqurvanillapy/lyzh/internal/rename"
	"github.com/anqurvanillapy/lyzh/internal/unify"
)

// TypeMismatchError reports that check found expected ≠ got after
// normalization.
type TypeMismatchError struct {
	Loc          core.Loc
	Expected, Got ast.Term
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected '%v', got '%v'", e.Loc, e.Expected, e.Got)
}

// Location implements diagnostics.Located.
func (e *TypeMismatchError) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *TypeMismatchError) Reason() string {
	return fmt.Sprintf("expected '%v', got '%v'", e.Expected, e.Got)
}

// NotAFunctionTypeError reports an application f(x) where f's
// inferred type was not a Π.
type NotAFunctionTypeError struct {
	Loc core.Loc
	Got ast.Term
}

func (e *NotAFunctionTypeError) Error() string {
	return fmt.Sprintf("%s: expected function type, got '%v'", e.Loc, e.Got)
}

// Location implements diagnostics.Located.
func (e *NotAFunctionTypeError) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *NotAFunctionTypeError) Reason() string {
	return fmt.Sprintf("expected function type, got '%v'", e.Got)
}

// NotAFunctionError reports a λ checked against a non-Π type.
type NotAFunctionError struct {
	Loc core.Loc
	Got ast.Term
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("%s: expected '%v', got function type", e.Loc, e.Got)
}

// Location implements diagnostics.Located.
func (e *NotAFunctionError) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *NotAFunctionError) Reason() string {
	return fmt.Sprintf("expected '%v', got function type", e.Got)
}

// Elaborator holds the globals table (already-elaborated top-level
// definitions, keyed by name ID) and the locals table (in-scope
// variable IDs mapped to their declared type), plus the identifier
// factory every fresh rename draws from.
type Elaborator struct {
	ids     *core.IDs
	Globals ast.Globals
	locals  ast.Locals
}

// New returns an Elaborator with empty globals and locals tables,
// drawing fresh IDs from ids.
func New(ids *core.IDs) *Elaborator {
	return &Elaborator{ids: ids, Globals: make(ast.Globals), locals: make(ast.Locals)}
}

// Elaborate type-checks every definition in ds, in order, each one
// seeing exactly the globals produced by strictly earlier
// definitions. The first failure aborts the run; no partial Def is
// inserted into globals on failure.
func (e *Elaborator) Elaborate(ds []core.Def[cst.Expr]) ([]core.Def[ast.Term], error) {
	out := make([]core.Def[ast.Term], len(ds))
	for i, d := range ds {
		checked, err := e.elaborateDef(d)
		if err != nil {
			return nil, err
		}
		out[i] = checked
	}
	return out, nil
}

func (e *Elaborator) elaborateDef(d core.Def[cst.Expr]) (core.Def[ast.Term], error) {
	var checked []core.ID
	params := make([]core.Param[ast.Term], len(d.Params))
	for i, p := range d.Params {
		typ, err := e.Check(p.Type, ast.Univ{})
		if err != nil {
			return core.Def[ast.Term]{}, err
		}
		params[i] = core.Param[ast.Term]{Name: p.Name, Type: typ}
		e.locals[p.Name.ID] = typ
		checked = append(checked, p.Name.ID)
	}

	ret, err := e.Check(d.Ret, ast.Univ{})
	if err != nil {
		return core.Def[ast.Term]{}, err
	}
	body, err := e.Check(d.Body, ret)
	if err != nil {
		return core.Def[ast.Term]{}, err
	}

	for _, id := range checked {
		delete(e.locals, id)
	}

	checkedDef := core.Def[ast.Term]{Loc: d.Loc, Name: d.Name, Params: params, Ret: ret, Body: body}
	e.Globals[d.Name.ID] = checkedDef
	return checkedDef, nil
}

// Check verifies e against the already-elaborated expected type typ,
// returning the checked term.
func (e *Elaborator) Check(expr cst.Expr, typ ast.Term) (ast.Term, error) {
	if fn, ok := expr.(cst.Fn); ok {
		switch nfTyp := e.nf().Term(typ).(type) {
		case ast.FnType:
			bodyType := e.nf().Subst(nfTyp.P.Name, ast.Ref{V: fn.V}, nfTyp.Body)
			param := core.Param[ast.Term]{Name: fn.V, Type: nfTyp.P.Type}
			body, err := e.guardedCheck(param, fn.Body, bodyType)
			if err != nil {
				return nil, err
			}
			return ast.Fn{P: param, Body: body}, nil
		default:
			return nil, &NotAFunctionError{Loc: fn.Loc, Got: nfTyp}
		}
	}

	tm, got, err := e.Infer(expr)
	if err != nil {
		return nil, err
	}
	got = e.nf().Term(got)
	typ = e.nf().Term(typ)
	if e.unify().Unify(got, typ) {
		return tm, nil
	}
	return nil, &TypeMismatchError{Loc: expr.Location(), Expected: typ, Got: got}
}

// Infer synthesizes a term and its type from e.
func (e *Elaborator) Infer(expr cst.Expr) (ast.Term, ast.Term, error) {
	switch ex := expr.(type) {
	case cst.Resolved:
		if typ, ok := e.locals[ex.V.ID]; ok {
			return ast.Ref{V: ex.V}, typ, nil
		}
		d, ok := e.Globals[ex.V.ID]
		if !ok {
			panic("lyzh: impossible: resolved reference with no binder in scope")
		}
		return rename.Rename(e.ids, ast.ToValue(d)), rename.Rename(e.ids, ast.ToType(d)), nil

	case cst.FnType:
		// The parameter type is inferred, not checked against Univ.
		// With Univ : Univ the two agree; check(p.Type, Univ) would be
		// the stricter alternative.
		pTyp, _, err := e.Infer(ex.P.Type)
		if err != nil {
			return nil, nil, err
		}
		checkedP := core.Param[ast.Term]{Name: ex.P.Name, Type: pTyp}
		bTm, bTy, err := e.guardedInfer(checkedP, ex.Body)
		if err != nil {
			return nil, nil, err
		}
		return ast.FnType{P: checkedP, Body: bTm}, bTy, nil

	case cst.App:
		fTm, fTyp, err := e.Infer(ex.F)
		if err != nil {
			return nil, nil, err
		}
		p, ok := fTyp.(ast.FnType)
		if !ok {
			return nil, nil, &NotAFunctionTypeError{Loc: ex.F.Location(), Got: fTyp}
		}
		xTm, err := e.guardedCheck(p.P, ex.X, p.P.Type)
		if err != nil {
			return nil, nil, err
		}
		typ := e.nf().Subst(p.P.Name, xTm, p.Body)
		tm := e.nf().Apply(fTm, xTm)
		return tm, typ, nil

	case cst.Univ:
		return ast.Univ{}, ast.Univ{}, nil
	}
	panic("lyzh: impossible: unknown expression kind in infer")
}

func (e *Elaborator) guardedCheck(p core.Param[ast.Term], expr cst.Expr, typ ast.Term) (ast.Term, error) {
	e.locals[p.Name.ID] = p.Type
	tm, err := e.Check(expr, typ)
	delete(e.locals, p.Name.ID)
	return tm, err
}

func (e *Elaborator) guardedInfer(p core.Param[ast.Term], expr cst.Expr) (ast.Term, ast.Term, error) {
	e.locals[p.Name.ID] = p.Type
	tm, typ, err := e.Infer(expr)
	delete(e.locals, p.Name.ID)
	return tm, typ, err
}

func (e *Elaborator) nf() *normalize.Normalizer {
	return normalize.New(e.ids, e.Globals)
}

func (e *Elaborator) unify() *unify.Unifier {
	return unify.New(e.ids, e.Globals)
}
