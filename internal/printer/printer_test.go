package printer

import (
	"testing"

	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
)

func TestTermForms(t *testing.T) {
	x := core.Var{Text: "x", ID: 1}
	cases := []struct {
		name string
		term ast.Term
		want string
	}{
		{"ref", ast.Ref{V: x}, "x"},
		{"univ", ast.Univ{}, "type"},
		{"fn", ast.Fn{P: core.Param[ast.Term]{Name: x, Type: ast.Univ{}}, Body: ast.Ref{V: x}}, "|x| { x }"},
		{"fntype", ast.FnType{P: core.Param[ast.Term]{Name: x, Type: ast.Univ{}}, Body: ast.Ref{V: x}}, "(x: type) -> x"},
		{"app", ast.App{F: ast.Ref{V: x}, X: ast.Univ{}}, "(x type)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Term(c.term); got != c.want {
				t.Fatalf("Term(%s) = %q, want %q", c.name, got, c.want)
			}
		})
	}
}

func TestDefForm(t *testing.T) {
	a := core.Var{Text: "a", ID: 1}
	x := core.Var{Text: "x", ID: 2}
	d := core.Def[ast.Term]{
		Name: core.Var{Text: "id", ID: 3},
		Params: []core.Param[ast.Term]{
			{Name: a, Type: ast.Univ{}},
			{Name: x, Type: ast.Ref{V: a}},
		},
		Ret:  ast.Ref{V: a},
		Body: ast.Ref{V: x},
	}
	want := "fn id (a: type) (x: a) -> a {\n\tx\n}"
	if got := Def(d); got != want {
		t.Fatalf("Def() = %q, want %q", got, want)
	}
}

func TestDefsJoinsWithBlankLine(t *testing.T) {
	d1 := core.Def[ast.Term]{Name: core.Var{Text: "a", ID: 1}, Ret: ast.Univ{}, Body: ast.Univ{}}
	d2 := core.Def[ast.Term]{Name: core.Var{Text: "b", ID: 2}, Ret: ast.Univ{}, Body: ast.Univ{}}
	got := Defs([]core.Def[ast.Term]{d1, d2})
	want := "fn a -> type {\n\ttype\n}\n\nfn b -> type {\n\ttype\n}"
	if got != want {
		t.Fatalf("Defs() = %q, want %q", got, want)
	}
}
