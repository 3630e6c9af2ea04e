package parser

import (
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/lexer"
)

// parseMacro parses a macro definition (spec.md §4.3 "parse_macro keyword":
// `( id (, id)* )? { … }`). The body is captured as a raw span and not
// parsed now — it is re-parsed once per call, against the definition scope
// extended with that call's argument bindings (spec.md §9 "Deferred
// parsing of bodies"). Grounded on parse.c's parse_macro.
func (p *Parser) parseMacro(sc *ast.Scope, em Emitter) error {
	p.expectSig(lexer.LParen, "a macro definition's argument list")

	var inputs []*ast.Variable
	t := p.nextSig()
	if t.tok.Kind == lexer.Identifier {
		for {
			inputs = append(inputs, &ast.Variable{Name: identText(t)})
			sep := p.nextSig()
			if sep.tok.Kind == lexer.Comma {
				t = p.expectSig(lexer.Identifier, "a macro argument name")
				continue
			}
			if sep.tok.Kind != lexer.RParen {
				p.errorf(sep.begin, "expecting a closing ) or another argument")
			}
			break
		}
	}

	p.expectSig(lexer.LBrace, "a macro definition's code block")
	body := p.scanBlockSpan()

	return em.Accept(ast.Value{Kind: ast.KindMacro, Payload: &ast.Macro{
		Inputs:     inputs,
		Scope:      sc,
		Body:       body,
		SourceFile: p.File,
		Source:     p.Source,
	}})
}

// parseMacroCall parses a macro invocation's argument list (spec.md §4.3
// "parse_macro_call": `( value (, value)* )?`), checking arity against the
// macro's declared inputs. Grounded on parse.c's parse_macro_call.
func (p *Parser) parseMacroCall(sc *ast.Scope, em Emitter, macro *ast.Macro) error {
	p.expectSig(lexer.LParen, "a macro invocation's argument list")

	var inputs []ast.Value
	t := p.peekSig()
	if t.tok.Kind == lexer.RParen {
		p.nextSig()
	} else {
		for {
			single := newSingle()
			if err := p.parseValue(sc, single, false); err != nil {
				return err
			}
			inputs = append(inputs, single.value)
			sep := p.nextSig()
			if sep.tok.Kind == lexer.Comma {
				continue
			}
			if sep.tok.Kind != lexer.RParen {
				p.errorf(sep.begin, "expecting a closing ) or another argument")
			}
			break
		}
	}

	if len(inputs) != len(macro.Inputs) {
		p.errorf(p.Cursor, "wrong number of arguments: this macro takes %d, got %d", len(macro.Inputs), len(inputs))
	}

	return em.Accept(ast.Value{Kind: ast.KindMacroCall, Payload: &ast.MacroCall{Macro: macro, Inputs: inputs}})
}
