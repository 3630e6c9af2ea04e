package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// parseMap parses `map variable { line* }` (spec.md §4.4 "parse_map"):
// variable must already be a bound loop/macro-parameter Variable (map
// references an existing binding, it does not introduce one), and each
// line picks a filter and a code block. Grounded on parse.c's parse_map.
func (p *Parser) parseMap(sc *ast.Scope, em Emitter) error {
	start := p.Cursor
	single := newSingle()
	if err := p.parseValue(sc, single, false); err != nil {
		return err
	}
	if single.value.Kind != ast.KindVariable {
		p.errorf(start, "wrong type - map expects a variable bound by a surrounding for or macro")
	}
	item := single.value.Payload.(*ast.Variable)

	p.expectSig(lexer.LBrace, "a map statement")

	var lines []*ast.MapLine
	t := p.peekSig()
	for t.tok.Kind != lexer.RBrace {
		line, err := p.parseMapLine(sc)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		t = p.peekSig()
	}
	p.nextSig()

	return em.Accept(ast.Value{Kind: ast.KindMap, Payload: &ast.Map{Item: item, Lines: lines}})
}

// parseMapLine parses one `filter { code }` clause of a map statement
// (spec.md §4.4 "parse_map_line"). Unlike macro/for bodies, a map line's
// code is parsed immediately rather than deferred, since a map dispatches
// on a value that's already bound by the time the map runs.
//
// Grounded on parse.c's parse_map_line.
func (p *Parser) parseMapLine(sc *ast.Scope) (*ast.MapLine, error) {
	fs := newSingle()
	if err := p.parseFilter(sc, fs); err != nil {
		return nil, err
	}

	p.expectSig(lexer.LBrace, "a map line's code block")
	block := p.scanBlockSpan()
	inner := sc.Push()
	code, err := ParseSpan(p.Arena, p.Loader, p.File, p.Source, block, inner)
	if err != nil {
		return nil, err
	}

	return &ast.MapLine{Filter: fs.value, Code: code}, nil
}
