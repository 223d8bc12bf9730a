package parser

import (
	"testing"

	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/cst"
)

func mustParse(t *testing.T, src string) []core.Def[cst.Expr] {
	t.Helper()
	defs, err := Parse(src, &core.IDs{})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return defs
}

func TestParseIdentity(t *testing.T) {
	defs := mustParse(t, "fn id (a: type) (x: a) -> a { x }")
	if len(defs) != 1 {
		t.Fatalf("got %d defs, want 1", len(defs))
	}
	d := defs[0]
	if d.Name.Text != "id" || len(d.Params) != 2 {
		t.Fatalf("unexpected def shape: %+v", d)
	}
	if _, ok := d.Ret.(cst.Unresolved); !ok {
		t.Fatalf("Ret should be an unresolved reference to 'a', got %T", d.Ret)
	}
	if _, ok := d.Body.(cst.Unresolved); !ok {
		t.Fatalf("Body should be an unresolved reference to 'x', got %T", d.Body)
	}
}

func TestParseLambda(t *testing.T) {
	defs := mustParse(t, "fn k -> type { |x| { x } }")
	fn, ok := defs[0].Body.(cst.Fn)
	if !ok {
		t.Fatalf("expected a Fn body, got %T", defs[0].Body)
	}
	if fn.V.Text != "x" {
		t.Fatalf("lambda parameter text = %q, want %q", fn.V.Text, "x")
	}
}

func TestParseApplicationRequiresParens(t *testing.T) {
	// "(a type)" parses as a single application via the grammar's
	// paren_expr/app cooperation: the whole parenthesized pair is one
	// App node, not two adjacent expressions.
	defs := mustParse(t, "fn f (a: type) -> type { (a type) }")
	app, ok := defs[0].Body.(cst.App)
	if !ok {
		t.Fatalf("expected an App body, got %T", defs[0].Body)
	}
	if _, ok := app.F.(cst.Unresolved); !ok {
		t.Fatalf("App.F should be a reference, got %T", app.F)
	}
	if _, ok := app.X.(cst.Univ); !ok {
		t.Fatalf("App.X should be the universe, got %T", app.X)
	}
}

func TestParseMultipleDefinitions(t *testing.T) {
	defs := mustParse(t, "fn id (a: type) (x: a) -> a { x }\nfn u -> type { ((id type) type) }")
	if len(defs) != 2 {
		t.Fatalf("got %d defs, want 2", len(defs))
	}
	if defs[1].Name.Text != "u" {
		t.Fatalf("second def named %q, want u", defs[1].Name.Text)
	}
}

func TestParseEveryBinderGetsAnID(t *testing.T) {
	defs := mustParse(t, "fn id (a: type) (x: a) -> a { x }")
	seen := map[core.ID]bool{}
	seen[defs[0].Name.ID] = true
	for _, p := range defs[0].Params {
		if seen[p.Name.ID] {
			t.Fatalf("duplicate ID %d across binders", p.Name.ID)
		}
		seen[p.Name.ID] = true
	}
}

func TestParseErrorMissingArrow(t *testing.T) {
	_, err := Parse("fn bad (a: type) { a }", &core.IDs{})
	if err == nil {
		t.Fatal("expected a parse error for a missing '->'")
	}
}
