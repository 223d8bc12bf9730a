// Package cst defines the concrete syntax tree the parser produces
// and the resolver rewrites in place. Every node carries a source
// Loc; variable references start out Unresolved (name only) and are
// turned into Resolved references (carrying the binder's ID) by
// internal/resolve before the tree reaches the elaborator.
package cst

import "github.com/anqurvanillapy/lyzh/internal/core"

// Expr is any concrete expression node. The concrete type switch is
// exhaustive over Unresolved, Resolved, Univ, Fn, FnType and App;
// there is no sentinel "unknown expression" case.
type Expr interface {
	expr()
	Location() core.Loc
}

// Unresolved is a variable reference as written by the user, before
// the resolver has matched it against a binder.
type Unresolved struct {
	Loc core.Loc
	V   core.Var
}

// Resolved is a variable reference after resolution: V.ID equals the
// ID of the binder it refers to.
type Resolved struct {
	Loc core.Loc
	V   core.Var
}

// Univ is the universe, written "type" in source.
type Univ struct {
	Loc core.Loc
}

// Fn is a lambda abstraction with a single, unannotated parameter:
// "|x| { body }".
type Fn struct {
	Loc  core.Loc
	V    core.Var
	Body Expr
}

// FnType is a dependent function type (x:A) -> B.
type FnType struct {
	Loc  core.Loc
	P    core.Param[Expr]
	Body Expr
}

// App is function application "f x".
type App struct {
	Loc core.Loc
	F   Expr
	X   Expr
}

func (Unresolved) expr() {}
func (Resolved) expr()   {}
func (Univ) expr()       {}
func (Fn) expr()         {}
func (FnType) expr()     {}
func (App) expr()        {}

func (e Unresolved) Location() core.Loc { return e.Loc }
func (e Resolved) Location() core.Loc   { return e.Loc }
func (e Univ) Location() core.Loc       { return e.Loc }
func (e Fn) Location() core.Loc         { return e.Loc }
func (e FnType) Location() core.Loc     { return e.Loc }
func (e App) Location() core.Loc        { return e.Loc }
