// Package ast defines the elaborator's output form: terms with no
// source locations, where every binder and every reference carries a
// globally unique ID. Term values are immutable after creation — the
// renamer (internal/rename) builds new nodes with fresh IDs rather
// than mutating existing ones.
package ast

import (
	"fmt"

	"github.com/anqurvanillapy/lyzh/internal/core"
)

// Term is any elaborated term. The concrete type switch is exhaustive
// over Ref, Univ, Fn, FnType and App.
type Term interface {
	term()
	fmt.Stringer
}

// Ref is a use-occurrence of a variable, naming the binder it was
// checked against.
type Ref struct {
	V core.Var
}

// Univ is the universe. In this system Univ : Univ — a deliberate,
// accepted inconsistency (see spec §9); there is no universe
// hierarchy to check against.
type Univ struct{}

// Fn is a checked lambda abstraction; unlike cst.Fn its parameter
// carries the type it was checked against (adopted from the Π it was
// checked under, per the elaborator's check rule).
type Fn struct {
	P    core.Param[Term]
	Body Term
}

// FnType is a dependent function type Π(x:A).B.
type FnType struct {
	P    core.Param[Term]
	Body Term
}

// App is function application.
type App struct {
	F Term
	X Term
}

func (Ref) term()    {}
func (Univ) term()   {}
func (Fn) term()     {}
func (FnType) term() {}
func (App) term()    {}

func (t Ref) String() string    { return t.V.Text }
func (t Univ) String() string   { return "type" }
func (t Fn) String() string     { return fmt.Sprintf("|%v| { %v }", t.P, t.Body) }
func (t FnType) String() string { return fmt.Sprintf("%v -> %v", t.P, t.Body) }
func (t App) String() string    { return fmt.Sprintf("(%v %v)", t.F, t.X) }

// Globals is the append-only table of already-elaborated top-level
// definitions, keyed by the ID of their name.
type Globals map[core.ID]core.Def[Term]

// Locals maps in-scope variable IDs to their declared type. It is
// mutated under strict push/pop discipline by the elaborator: a
// binder is inserted when its scope is entered and removed when it is
// left, never left dangling across sibling subterms.
type Locals map[core.ID]Term

// ToValue folds a definition's parameters into a right-nested lambda
// over its body: Def(params=[p1,p2], body=b) becomes
// Fn(p1, Fn(p2, b)). Used by the elaborator to materialize a global
// definition's value at a reference site.
func ToValue(d core.Def[Term]) Term {
	tm := d.Body
	for i := len(d.Params) - 1; i >= 0; i-- {
		tm = Fn{P: d.Params[i], Body: tm}
	}
	return tm
}

// ToType folds a definition's parameters into a right-nested Π over
// its declared return type, the counterpart to ToValue.
func ToType(d core.Def[Term]) Term {
	typ := d.Ret
	for i := len(d.Params) - 1; i >= 0; i-- {
		typ = FnType{P: d.Params[i], Body: typ}
	}
	return typ
}
