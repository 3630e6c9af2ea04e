package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/filter"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// parseOutlineItem parses one item of an outline: a run of words, the last
// of which is the item's name and every earlier one a tag — bare, or
// `word = { code }` for a tag carrying a value — followed by either a
// semicolon or a nested outline block (spec.md §4.4 "parse_outline_item").
//
// Grounded on parse.c's parse_outline_item.
func (p *Parser) parseOutlineItem(sc *ast.Scope, em Emitter) error {
	var tags []*ast.OutlineTag
	var last sigToken
	haveLast := false

	t := p.nextSig()
	for t.tok.Kind == lexer.Identifier {
		if haveLast {
			tags = append(tags, &ast.OutlineTag{Name: identText(last)})
		}
		last = t
		haveLast = true

		t = p.nextSig()
		if t.tok.Kind == lexer.Eq {
			p.expectSig(lexer.LBrace, "a tag's code block")
			block := p.scanBlockSpan()
			inner := sc.Push()
			values, err := ParseSpan(p.Arena, p.Loader, p.File, p.Source, block, inner)
			if err != nil {
				return err
			}
			tags = append(tags, &ast.OutlineTag{Name: identText(last), HasValue: true, Value: values})
			haveLast = false
			t = p.nextSig()
		}
	}
	if !haveLast {
		p.errorf(t.begin, "an outline item must have a name")
	}
	name := identText(last)

	var children *ast.Outline
	switch t.tok.Kind {
	case lexer.LBrace:
		p.Cursor = t.begin
		p.peeked = nil
		single := newSingle()
		if err := p.parseOutline(sc, single); err != nil {
			return err
		}
		children = single.value.Payload.(*ast.Outline)
	case lexer.Semicolon:
		// nothing further
	default:
		p.errorf(t.begin, "an outline item can only end with a semicolon or an opening brace")
	}

	return em.Accept(ast.Value{Kind: ast.KindOutlineItem, Payload: &ast.OutlineItem{
		Tags: tags, Name: name, Children: children,
	}})
}

// parseOutline parses a brace-delimited list of outline items (spec.md §4.4
// "parse_outline"). Grounded on parse.c's parse_outline.
func (p *Parser) parseOutline(sc *ast.Scope, em Emitter) error {
	p.expectSig(lexer.LBrace, "an outline")

	var items []*ast.OutlineItem
	t := p.peekSig()
	for t.tok.Kind != lexer.RBrace {
		single := newSingle()
		if err := p.parseOutlineItem(sc, single); err != nil {
			return err
		}
		items = append(items, single.value.Payload.(*ast.OutlineItem))
		t = p.peekSig()
	}
	p.nextSig()

	return em.Accept(ast.Value{Kind: ast.KindOutline, Payload: &ast.Outline{Items: items}})
}

// itemsOf returns the items an already-resolved Value can stand in for as
// an outline: an Outline's own items, or an OutlineItem's children's items
// (spec.md §4.4 "can_get_items"/"get_items", used by union, which needs
// the items immediately rather than deferring like for does).
func itemsOf(v ast.Value) ([]*ast.OutlineItem, bool) {
	switch v.Kind {
	case ast.KindOutline:
		return v.Payload.(*ast.Outline).Items, true
	case ast.KindOutlineItem:
		it := v.Payload.(*ast.OutlineItem)
		if it.Children == nil {
			return nil, true
		}
		return it.Children.Items, true
	default:
		return nil, false
	}
}

// parseUnion parses `union { value [with filter] (, value [with filter])* }`
// (spec.md §4.4 "parse_union"): each operand must already resolve to a set
// of items (unlike for's source, a union's operands can't be a still-unbound
// loop Variable, since the result is assembled immediately rather than
// deferred), optionally filtered, and concatenated into one Outline.
//
// Grounded on parse.c's parse_union.
func (p *Parser) parseUnion(sc *ast.Scope, em Emitter) error {
	p.expectSig(lexer.LBrace, "a union statement")

	var items []*ast.OutlineItem
	for {
		start := p.Cursor
		single := newSingle()
		if err := p.parseValue(sc, single, false); err != nil {
			return err
		}
		operandItems, ok := itemsOf(single.value)
		if !ok {
			p.errorf(start, "wrong type - the union statement expects an outline")
		}

		var filterExpr ast.Value
		hasFilter := false
		t := p.peekSig()
		if t.tok.Kind == lexer.Identifier {
			if identText(t) != "with" {
				p.errorf(t.begin, `only the "with" modifier is allowed here`)
			}
			p.nextSig()
			fs := newSingle()
			if err := p.parseFilter(sc, fs); err != nil {
				return err
			}
			filterExpr = fs.value
			hasFilter = true
			t = p.peekSig()
		}

		for _, it := range operandItems {
			if !hasFilter || filter.Test(filterExpr, it) {
				items = append(items, it)
			}
		}

		if t.tok.Kind == lexer.Comma {
			p.nextSig()
			continue
		}
		if t.tok.Kind != lexer.RBrace {
			p.errorf(t.begin, "the list of outlines must end with a closing }")
		}
		p.nextSig()
		break
	}

	return em.Accept(ast.Value{Kind: ast.KindOutline, Payload: &ast.Outline{Items: items}})
}
