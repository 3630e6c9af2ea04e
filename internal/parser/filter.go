package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// filterOp is an operator waiting on the shunting-yard stack. Its integer
// values double as the operator's precedence (NOT binds tightest, LPAREN is
// a barrier higher than everything), mirroring original_source/source/
// filter.c's parse_filter, whose `enum operators { NOT, AND, OR, LPAREN }`
// ordering is used the same way for its pop-while-<=-precedence loops.
type filterOp int

const (
	opNot filterOp = iota
	opAnd
	opOr
	opLParen
)

// parseFilter parses a filter expression (spec.md §4.4 "Filter grammar":
// `()  !  &  |` in that precedence order, tightest to loosest) and emits the
// resulting FilterTag/FilterAny/FilterNot/FilterAnd/FilterOr Value.
//
// Grounded on filter.c's parse_filter, with one deliberate change: the
// operator stack is a Go slice that grows as needed instead of the
// original's `stack[32]` fixed array (spec.md §9 "Filter operator stack
// depth" redesign flag — a deeply nested filter expression should work or
// fail on its own grammar, not on an arbitrary stack cap).
func (p *Parser) parseFilter(sc *ast.Scope, em Emitter) error {
	var ops []filterOp
	var vals []ast.Value

	pop := func() ast.Value {
		v := vals[len(vals)-1]
		vals = vals[:len(vals)-1]
		return v
	}
	reduce := func(o filterOp) {
		switch o {
		case opNot:
			vals = append(vals, ast.Value{Kind: ast.KindFilterNot, Payload: &ast.FilterNot{Child: pop()}})
		case opAnd:
			b, a := pop(), pop()
			vals = append(vals, ast.Value{Kind: ast.KindFilterAnd, Payload: &ast.FilterAnd{A: a, B: b}})
		case opOr:
			b, a := pop(), pop()
			vals = append(vals, ast.Value{Kind: ast.KindFilterOr, Payload: &ast.FilterOr{A: a, B: b}})
		}
	}

	wantTerm := true
loop:
	for {
		if wantTerm {
			t := p.nextSig()
			switch t.tok.Kind {
			case lexer.Identifier:
				vals = append(vals, ast.Value{Kind: ast.KindFilterTag, Payload: &ast.FilterTag{Name: identText(t)}})
				wantTerm = false
			case lexer.Star:
				vals = append(vals, ast.Value{Kind: ast.KindFilterAny})
				wantTerm = false
			case lexer.Bang:
				ops = append(ops, opNot)
			case lexer.LParen:
				ops = append(ops, opLParen)
			default:
				p.errorf(t.begin, "there seems to be a missing term here")
			}
			continue
		}

		t := p.peekSig()
		switch t.tok.Kind {
		case lexer.Amp:
			p.nextSig()
			for len(ops) > 0 && ops[len(ops)-1] <= opAnd {
				reduce(ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, opAnd)
			wantTerm = true

		case lexer.Pipe:
			p.nextSig()
			for len(ops) > 0 && ops[len(ops)-1] <= opOr {
				reduce(ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, opOr)
			wantTerm = true

		case lexer.RParen:
			p.nextSig()
			for len(ops) > 0 && ops[len(ops)-1] < opLParen {
				reduce(ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				p.errorf(t.begin, "no matching opening parenthesis")
			}
			ops = ops[:len(ops)-1]

		case lexer.Bang, lexer.LParen:
			p.errorf(t.begin, "there seems to be a missing operator here")

		default:
			break loop
		}
	}

	for len(ops) > 0 {
		o := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if o == opLParen {
			p.errorf(p.Cursor, "no matching closing parenthesis")
		}
		reduce(o)
	}

	return em.Accept(pop())
}
