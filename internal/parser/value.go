package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// parseValue parses a symbol reference (spec.md §4.3 parse_value): a bare
// identifier naming a keyword, a bound value, or — when allowAssign is set
// and the identifier is immediately followed by `=` — a new binding
// (`name = <value>`), which adds to sc but emits nothing of its own. An
// optional `;` ending the binding is consumed, together with the whitespace
// that directly follows it.
//
// Grounded on parse.c's parse_value.
func (p *Parser) parseValue(sc *ast.Scope, em Emitter, allowAssign bool) error {
	t := p.nextSig()
	if t.tok.Kind != lexer.Identifier {
		p.errorf(t.begin, "expecting a keyword or variable name here")
	}
	name := identText(t)

	if allowAssign {
		eq := p.peekSig()
		if eq.tok.Kind == lexer.Eq {
			p.nextSig()
			single := newSingle()
			if err := p.parseValue(sc, single, false); err != nil {
				return err
			}
			if !single.set {
				p.errorf(eq.end, "wrong type - this must be a value")
			}
			sc.Bind(name, single.value)
			if semi := p.peekSig(); semi.tok.Kind == lexer.Semicolon {
				p.nextSig()
				if ws, next := p.rawAt(p.Cursor); ws.Kind == lexer.Whitespace {
					p.Cursor = next
				}
			}
			return nil
		}
	}

	v, ok := sc.Lookup(name)
	if !ok {
		p.errorf(t.begin, "unknown variable or keyword")
	}
	if v.Kind == ast.KindKeyword {
		return p.dispatchKeyword(v.Payload.(ast.Keyword), sc, em)
	}
	return em.Accept(v)
}

// dispatchKeyword routes to the parse routine a Keyword value names
// (spec.md §4.2 "each binds to a Keyword value carrying a function
// pointer"; here the "function pointer" is this switch).
func (p *Parser) dispatchKeyword(kw ast.Keyword, sc *ast.Scope, em Emitter) error {
	switch kw {
	case ast.KeywordMacro:
		return p.parseMacro(sc, em)
	case ast.KeywordOutline:
		return p.parseOutline(sc, em)
	case ast.KeywordUnion:
		return p.parseUnion(sc, em)
	case ast.KeywordMap:
		return p.parseMap(sc, em)
	case ast.KeywordFor:
		return p.parseFor(sc, em)
	case ast.KeywordInclude:
		return p.parseInclude(sc, em)
	default:
		p.errorf(p.Cursor, "internal error: unbound keyword %q", string(kw))
		return nil
	}
}

// parseCode scans host-language text, flushing verbatim runs as CodeText
// and acting on `\ol` escapes, token-pasting `\\`, and references to
// in-scope macros/variables as they're found (spec.md §4.3 parse_code).
//
// Grounded on parse.c's parse_code state machine; rewritten here as a plain
// loop driven by p.Cursor rather than the original's labelled goto chain,
// which Go's lack of intra-function goto-into-scope makes awkward to carry
// over directly. Unlike parse_value/parse_filter/etc., which only ever
// consume significant tokens, parse_code must see whitespace and comments
// too since they belong verbatim in the output, so it drives the lexer's
// raw (non-skipping) Next directly.
func (p *Parser) parseCode(sc *ast.Scope, em Emitter) error {
	startC := p.Cursor

	flush := func(end int) error {
		if end > startC {
			return em.Accept(ast.Value{Kind: ast.KindCodeText, Payload: &ast.CodeText{Text: p.Source[startC:end]}})
		}
		return nil
	}

	for {
		p.peeked = nil
		start := p.Cursor
		tok, next := p.rawAt(p.Cursor)

		switch tok.Kind {
		case lexer.End:
			return flush(start)

		case lexer.Paste:
			if err := flush(start); err != nil {
				return err
			}
			p.Cursor = next
			startC = p.Cursor

		case lexer.Escape:
			if err := flush(start); err != nil {
				return err
			}
			p.Cursor = next
			if err := p.parseValue(sc, em, true); err != nil {
				return err
			}
			startC = p.Cursor

		case lexer.ErrorUnexpectedEOF:
			p.errorf(start, "unterminated comment or literal")

		case lexer.Identifier:
			v, bound := sc.Lookup(tok.Span.Text)
			if !bound || (v.Kind != ast.KindMacro && v.Kind != ast.KindVariable) {
				p.Cursor = next
				continue
			}
			if err := flush(start); err != nil {
				return err
			}
			p.Cursor = next

			switch v.Kind {
			case ast.KindMacro:
				if err := p.parseMacroCall(sc, em, v.Payload.(*ast.Macro)); err != nil {
					return err
				}
				startC = p.Cursor

			case ast.KindVariable:
				startC = p.Cursor
				bangPos := p.Cursor
				bangTok, bangNext := p.rawAt(bangPos)
				if bangTok.Kind == lexer.Bang {
					nameTok, nameNext := p.rawAt(bangNext)
					if nameTok.Kind == lexer.Identifier {
						err := em.Accept(ast.Value{Kind: ast.KindLookup, Payload: &ast.Lookup{
							Target: v.Payload.(*ast.Variable),
							Name:   nameTok.Span.Text,
						}})
						if err != nil {
							return err
						}
						p.Cursor = nameNext
						startC = p.Cursor
					} else {
						if err := em.Accept(v); err != nil {
							return err
						}
						p.Cursor = bangNext
					}
				} else {
					if err := em.Accept(v); err != nil {
						return err
					}
					p.Cursor = bangPos
				}
			}

		default:
			p.Cursor = next
		}
	}
}
