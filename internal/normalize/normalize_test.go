package normalize

import (
	"testing"

	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
)

// TestBetaReduction checks that applying a λ to an argument reduces
// via substitution (spec.md §4.4).
func TestBetaReduction(t *testing.T) {
	ids := &core.IDs{}
	x := core.Var{Text: "x", ID: ids.Next()}
	identity := ast.Fn{P: core.Param[ast.Term]{Name: x, Type: ast.Univ{}}, Body: ast.Ref{V: x}}

	n := New(ids, ast.Globals{})
	got := n.Term(ast.App{F: identity, X: ast.Univ{}})
	if _, ok := got.(ast.Univ); !ok {
		t.Fatalf("(|x|{x}) type did not reduce to Univ, got %v", got)
	}
}

// TestStuckApplicationLeftAlone checks that an application whose
// head does not reduce to a Fn is returned unchanged (the "stuck"
// case in spec.md §4.4).
func TestStuckApplicationLeftAlone(t *testing.T) {
	ids := &core.IDs{}
	f := core.Var{Text: "f", ID: ids.Next()}
	n := New(ids, ast.Globals{})
	got := n.Term(ast.App{F: ast.Ref{V: f}, X: ast.Univ{}})
	app, ok := got.(ast.App)
	if !ok {
		t.Fatalf("stuck application was not left as App: got %v", got)
	}
	if app.F.(ast.Ref).V.ID != f.ID {
		t.Fatalf("stuck application's head was altered")
	}
}

// TestSubstRenamesToAvoidCapture checks that substituting a term
// whose own binder shares a textual name with an ambient binder does
// not let that ambient binder's reference be captured (spec.md §8
// invariant 3, "capture avoidance").
func TestSubstRenamesToAvoidCapture(t *testing.T) {
	ids := &core.IDs{}
	// Ambient binder named "x", distinct from the "x" introduced by
	// the substituted term below.
	ambientX := core.Var{Text: "x", ID: ids.Next()}
	v := core.Var{Text: "v", ID: ids.Next()}

	// The value being substituted in for v is itself a λ that binds
	// a fresh "x" and returns a reference to the *ambient* x in its
	// body — i.e. ambientX is free inside the substituted term.
	substituted := ast.Fn{
		P:    core.Param[ast.Term]{Name: core.Var{Text: "x", ID: ids.Next()}, Type: ast.Univ{}},
		Body: ast.Ref{V: ambientX},
	}

	// The term being substituted into re-uses the name "x" for its
	// own binder, distinct from ambientX and from substituted's
	// parameter — this is the scenario capture would corrupt.
	shadowX := core.Var{Text: "x", ID: ids.Next()}
	target := ast.Fn{P: core.Param[ast.Term]{Name: shadowX, Type: ast.Univ{}}, Body: ast.Ref{V: v}}

	n := New(ids, ast.Globals{})
	got := n.Subst(v, substituted, target.Body).(ast.Fn)

	// got is the renamed copy of `substituted`; its body must still
	// refer to ambientX, not to got's own (freshly renamed) parameter.
	ref := got.Body.(ast.Ref)
	if ref.V.ID != ambientX.ID {
		t.Fatalf("substitution captured ambientX: body now refers to ID %d, want %d", ref.V.ID, ambientX.ID)
	}
}

// TestGlobalExpansion checks that a Ref bound in the environment is
// replaced and the result renormalized.
func TestGlobalExpansion(t *testing.T) {
	ids := &core.IDs{}
	v := core.Var{Text: "v", ID: ids.Next()}
	n := New(ids, ast.Globals{})
	got := n.Subst(v, ast.Univ{}, ast.Ref{V: v})
	if _, ok := got.(ast.Univ); !ok {
		t.Fatalf("substituted reference did not normalize to Univ, got %v", got)
	}
}

// TestIdempotence checks that normalizing an already-normal term
// returns something α-equivalent to itself (spec.md §8 invariant 4).
func TestIdempotence(t *testing.T) {
	ids := &core.IDs{}
	x := core.Var{Text: "x", ID: ids.Next()}
	tm := ast.Fn{P: core.Param[ast.Term]{Name: x, Type: ast.Univ{}}, Body: ast.Ref{V: x}}

	once := New(ids, ast.Globals{}).Term(tm)
	twice := New(ids, ast.Globals{}).Term(once)

	o := once.(ast.Fn)
	tw := twice.(ast.Fn)
	if o.Body.(ast.Ref).V.ID != o.P.Name.ID || tw.Body.(ast.Ref).V.ID != tw.P.Name.ID {
		t.Fatalf("normal forms are not both self-referential identities: %v, %v", once, twice)
	}
}
