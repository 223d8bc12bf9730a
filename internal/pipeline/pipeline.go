// Package pipeline wires the lexer, parser, resolver and elaborator
// into the single driver spec.md §2 and §5 describe: one *core.IDs
// value, constructed once and threaded explicitly through every
// stage that needs to mint a fresh binder, never a package-level
// singleton (spec §9's Design Notes call that out as a latent
// hazard).
package pipeline

import (
	"github.com/anqurvanillapy/lyzh/internal/ast"
	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/elaborate"
	"github.com/anqurvanillapy/lyzh/internal/parser"
	"github.com/anqurvanillapy/lyzh/internal/resolve"
)

// Run parses, resolves and elaborates src in one pass, returning the
// fully type-checked definitions in source order or the first error
// any stage produced. Definitions are elaborated in source order;
// each one sees exactly the globals produced by strictly earlier
// definitions (spec §5) — there is no mutual recursion.
func Run(src string) ([]core.Def[ast.Term], error) {
	ids := &core.IDs{}

	defs, err := parser.Parse(src, ids)
	if err != nil {
		return nil, err
	}

	resolved, err := resolve.New().Resolve(defs)
	if err != nil {
		return nil, err
	}

	return elaborate.New(ids).Elaborate(resolved)
}
