// Package parser is a small recursive-descent parser turning a token
// stream into the concrete syntax tree internal/cst defines. Its
// structure — one method per grammar production, explicit backtrack
// to a saved position on failure, "expected one of ..." messages
// assembled from the alternatives tried — follows the combinator
// style of original_source/lyzh's surface/{parsec,grammar}.py
// (SPEC_FULL.md §4.8), reimplemented as ordinary Go methods rather
// than first-class combinators.
package parser

import (
	"fmt"
	"strings"

	"github.com/anqurvanillapy/lyzh/internal/core"
	"github.com/anqurvanillapy/lyzh/internal/cst"
	"github.com/anqurvanillapy/lyzh/internal/lexer"
)

// Error is a parse error: the furthest-reaching failure seen while
// trying a production's alternatives, the way parsec.choice in the
// original keeps last_err so that running out of input mid-construct
// reports a specific cause rather than a generic "expected end of
// input" (SPEC_FULL.md, Supplemented Features).
type Error struct {
	Loc     core.Loc
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Message) }

// Location implements diagnostics.Located.
func (e *Error) Location() core.Loc { return e.Loc }

// Reason implements diagnostics.Located.
func (e *Error) Reason() string { return e.Message }

// Parser holds the token stream (scanned eagerly; the grammar is
// small enough that there is no benefit to lazy lexing) and the
// current read position.
type Parser struct {
	toks []lexer.Token
	pos  int
	ids  *core.IDs
}

// Parse scans and parses src, returning the ordered list of
// definitions it contains.
func Parse(src string, ids *core.IDs) ([]core.Def[cst.Expr], error) {
	lx := lexer.New(src, ids)
	var toks []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	p := &Parser{toks: toks, ids: ids}
	return p.prog()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) loc() core.Loc     { return p.cur().Loc }
func (p *Parser) mark() int         { return p.pos }
func (p *Parser) reset(mark int)    { p.pos = mark }

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) eat(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur().Kind != k {
		return lexer.Token{}, &Error{Loc: p.loc(), Message: fmt.Sprintf("expected '%s'", what)}
	}
	return p.advance(), nil
}

func (p *Parser) ident() (core.Var, error) {
	if p.cur().Kind != lexer.IDENT {
		return core.Var{}, &Error{Loc: p.loc(), Message: "expected identifier"}
	}
	tok := p.advance()
	return core.Var{Text: tok.Text, ID: p.ids.Next()}, nil
}

func (p *Parser) prog() ([]core.Def[cst.Expr], error) {
	var defs []core.Def[cst.Expr]
	for p.cur().Kind != lexer.EOF {
		d, err := p.defn()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

func (p *Parser) defn() (core.Def[cst.Expr], error) {
	loc := p.loc()
	if _, err := p.eat(lexer.FN, "fn"); err != nil {
		return core.Def[cst.Expr]{}, err
	}
	name, err := p.ident()
	if err != nil {
		return core.Def[cst.Expr]{}, err
	}

	var params []core.Param[cst.Expr]
	for p.cur().Kind == lexer.LPAREN {
		param, err := p.param()
		if err != nil {
			return core.Def[cst.Expr]{}, err
		}
		params = append(params, param)
	}

	if _, err := p.eat(lexer.ARROW, "->"); err != nil {
		return core.Def[cst.Expr]{}, err
	}
	ret, err := p.expr()
	if err != nil {
		return core.Def[cst.Expr]{}, err
	}
	if _, err := p.eat(lexer.LBRACE, "{"); err != nil {
		return core.Def[cst.Expr]{}, err
	}
	body, err := p.expr()
	if err != nil {
		return core.Def[cst.Expr]{}, err
	}
	if _, err := p.eat(lexer.RBRACE, "}"); err != nil {
		return core.Def[cst.Expr]{}, err
	}

	return core.Def[cst.Expr]{Loc: loc, Name: name, Params: params, Ret: ret, Body: body}, nil
}

func (p *Parser) param() (core.Param[cst.Expr], error) {
	if _, err := p.eat(lexer.LPAREN, "("); err != nil {
		return core.Param[cst.Expr]{}, err
	}
	name, err := p.ident()
	if err != nil {
		return core.Param[cst.Expr]{}, err
	}
	if _, err := p.eat(lexer.COLON, ":"); err != nil {
		return core.Param[cst.Expr]{}, err
	}
	typ, err := p.expr()
	if err != nil {
		return core.Param[cst.Expr]{}, err
	}
	if _, err := p.eat(lexer.RPAREN, ")"); err != nil {
		return core.Param[cst.Expr]{}, err
	}
	return core.Param[cst.Expr]{Name: name, Type: typ}, nil
}

// expr tries each alternative in the grammar's order — fn, fn_type,
// univ, app, ref, paren_expr — backtracking to the start position on
// failure, mirroring parsec.choice.
func (p *Parser) expr() (cst.Expr, error) {
	start := p.mark()
	var errs []error

	if e, err := p.fn(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.fnType(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.univ(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.app(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.ref(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.parenExpr(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}

	return nil, p.choiceError(start, errs)
}

// primaryExpr is the left operand of an application: a λ, a reference
// or a parenthesized expression, never another bare application
// (spec §6: application is left-associative but requires explicit
// parentheses — the grammar does not fold adjacent applications).
func (p *Parser) primaryExpr() (cst.Expr, error) {
	start := p.mark()
	var errs []error

	if e, err := p.fn(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.ref(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}
	if e, err := p.parenExpr(); err == nil {
		return e, nil
	} else {
		errs = append(errs, err)
		p.reset(start)
	}

	return nil, p.choiceError(start, errs)
}

func (p *Parser) fn() (cst.Expr, error) {
	loc := p.loc()
	if _, err := p.eat(lexer.PIPE, "|"); err != nil {
		return nil, err
	}
	x, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.PIPE, "|"); err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.RBRACE, "}"); err != nil {
		return nil, err
	}
	return cst.Fn{Loc: loc, V: x, Body: body}, nil
}

func (p *Parser) fnType() (cst.Expr, error) {
	loc := p.loc()
	param, err := p.param()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.ARROW, "->"); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return cst.FnType{Loc: loc, P: param, Body: body}, nil
}

func (p *Parser) univ() (cst.Expr, error) {
	loc := p.loc()
	if _, err := p.eat(lexer.TYPE, "type"); err != nil {
		return nil, err
	}
	return cst.Univ{Loc: loc}, nil
}

func (p *Parser) app() (cst.Expr, error) {
	loc := p.loc()
	f, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	return cst.App{Loc: loc, F: f, X: x}, nil
}

func (p *Parser) ref() (cst.Expr, error) {
	loc := p.loc()
	v, err := p.ident()
	if err != nil {
		return nil, err
	}
	return cst.Unresolved{Loc: loc, V: v}, nil
}

func (p *Parser) parenExpr() (cst.Expr, error) {
	if _, err := p.eat(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return e, nil
}

// choiceError builds an "expected one of: ..." message from the
// alternatives tried, preferring the deepest (furthest-advancing)
// failure the way the original's Source.last_err does, since that
// failure is almost always the one the user needs to see.
func (p *Parser) choiceError(start int, errs []error) error {
	var deepest *Error
	deepestPos := -1
	for _, err := range errs {
		pe, ok := err.(*Error)
		if !ok {
			continue
		}
		if pe.Loc.Pos > deepestPos {
			deepestPos = pe.Loc.Pos
			deepest = pe
		}
	}
	if deepest != nil && deepestPos > p.toks[start].Loc.Pos {
		return deepest
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
		if pe, ok := err.(*Error); ok {
			msgs[i] = pe.Message
		}
	}
	return &Error{
		Loc:     p.toks[start].Loc,
		Message: "expected one of: " + strings.Join(msgs, ", "),
	}
}
