package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// parseFor parses `for name in source (with filter | reverse | list)* { … }`
// (spec.md §4.4 "parse_for"). source's Kind is checked but not resolved here
// — it may be an already-built Outline/OutlineItem, or a still-unbound loop
// Variable whose binding only exists once generation reaches this point
// (spec.md §3 "For": "source: Value (Outline or Variable)") — unlike union,
// whose operands are consumed immediately, for's body is deferred, so its
// source only needs to be resolvable later, at generation time.
//
// Grounded on parse.c's parse_for.
func (p *Parser) parseFor(sc *ast.Scope, em Emitter) error {
	nameTok := p.expectSig(lexer.Identifier, "a for statement's loop variable name")
	itemName := identText(nameTok)

	inTok := p.expectSig(lexer.Identifier, `the "in" keyword`)
	if identText(inTok) != "in" {
		p.errorf(inTok.begin, `expecting the "in" keyword here`)
	}

	srcStart := p.Cursor
	single := newSingle()
	if err := p.parseValue(sc, single, false); err != nil {
		return err
	}
	if single.value.Kind != ast.KindOutline && single.value.Kind != ast.KindOutlineItem && single.value.Kind != ast.KindVariable {
		p.errorf(srcStart, "wrong type - the for statement expects an outline")
	}
	source := single.value

	var filterExpr ast.Value
	hasFilter := false
	reverse := false
	list := false

	for {
		t := p.peekSig()
		if t.tok.Kind != lexer.Identifier {
			break
		}
		switch identText(t) {
		case "with":
			p.nextSig()
			fs := newSingle()
			if err := p.parseFilter(sc, fs); err != nil {
				return err
			}
			filterExpr = fs.value
			hasFilter = true
		case "reverse":
			p.nextSig()
			reverse = true
		case "list":
			p.nextSig()
			list = true
		default:
			p.errorf(t.begin, "invalid \"for\" statement modifier")
		}
	}

	p.expectSig(lexer.LBrace, "a for statement's code block")
	body := p.scanBlockSpan()

	return em.Accept(ast.Value{Kind: ast.KindFor, Payload: &ast.For{
		Item:       &ast.Variable{Name: itemName},
		Source:     source,
		Filter:     filterExpr,
		HasFilter:  hasFilter,
		Reverse:    reverse,
		List:       list,
		Scope:      sc,
		Body:       body,
		SourceFile: p.File,
		FullSource: p.Source,
	}})
}
