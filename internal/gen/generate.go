// Package gen implements the generator described in spec.md §4.5: walking
// a parsed Value tree and writing host-language text to an output sink,
// resolving macro calls, for-loops, map dispatch and variable/lookup
// references as it goes.
//
// Grounded on original_source/source/generate.c (generate_code,
// generate_code_node, generate_map, generate_for, generate_macro_call,
// generate_variable, generate_lookup*) for the dispatch shape and the
// per-iteration/per-call rebind-then-emit pattern. Two deliberate
// departures from generate.c, both already decided when internal/ast and
// internal/parser were built:
//
//   - Macro and For bodies are captured as raw spans rather than pre-parsed
//     once into a reusable AST (spec.md §9 "Deferred parsing of bodies").
//     Where generate.c walks an already-built list once per call/iteration,
//     this package re-parses the span each time, against a scope freshly
//     extended with that call's/iteration's bindings. The binding identity
//     (the same *ast.Variable shared between the scope entry and every
//     reference resolved inside the body) is what generate.c's
//     mutate-then-walk trick relies on, and it holds here too: each
//     (re-)parse looks the variable up afresh and gets back the one
//     Variable the generator just updated.
//   - "reverse" iterates the items slice backwards directly instead of
//     generate_for's O(n^2) linked-list reversal, which existed only
//     because the original's outline items form a singly linked list with
//     no reverse pointer; Go's slice-backed Outline.Items has none of that
//     constraint.
package gen

import (
	"fmt"
	"io"

	"github.com/swansontec/outline2c-sub000/internal/arena"
	"github.com/swansontec/outline2c-sub000/internal/ast"
	"github.com/swansontec/outline2c-sub000/internal/filter"
	"github.com/swansontec/outline2c-sub000/internal/naming"
	"github.com/swansontec/outline2c-sub000/internal/parser"
)

// Generator holds the collaborators a generation run needs beyond the
// Value tree itself: the arena backing the run (threaded through to
// parser.ParseSpan for deferred macro/for body re-parses) and the Loader a
// nested include might still need to resolve relative paths against.
type Generator struct {
	Arena  *arena.Arena
	Loader parser.Loader
}

// New returns a Generator backed by a and loader.
func New(a *arena.Arena, loader parser.Loader) *Generator {
	return &Generator{Arena: a, Loader: loader}
}

// Generate writes every value in values to out, in order (spec.md §4.6
// driver: "runs generate over each into the output sink").
func (g *Generator) Generate(out io.Writer, values []ast.Value) error {
	for _, v := range values {
		if err := g.node(out, v); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) node(out io.Writer, v ast.Value) error {
	switch v.Kind {
	case ast.KindCodeText:
		_, err := io.WriteString(out, v.Payload.(*ast.CodeText).Text)
		return err

	case ast.KindVariable:
		return g.variable(out, v.Payload.(*ast.Variable))

	case ast.KindLookup:
		return g.lookup(out, v.Payload.(*ast.Lookup))

	case ast.KindMacroCall:
		return g.macroCall(out, v.Payload.(*ast.MacroCall))

	case ast.KindMap:
		return g.mapNode(out, v.Payload.(*ast.Map))

	case ast.KindFor:
		return g.forNode(out, v.Payload.(*ast.For))

	default:
		return fmt.Errorf("gen: %s cannot appear in generated code", v.Kind)
	}
}

func (g *Generator) variable(out io.Writer, p *ast.Variable) error {
	if p.Bound == nil {
		return fmt.Errorf("gen: variable %q is not bound here", p.Name)
	}
	_, err := io.WriteString(out, p.Bound.Name)
	return err
}

// lookup resolves `variable!name` (spec.md §4.5 "Lookup"): first a
// same-named valued tag on the bound item, then a built-in name
// transform, else an error.
func (g *Generator) lookup(out io.Writer, p *ast.Lookup) error {
	if p.Target.Bound == nil {
		return fmt.Errorf("gen: variable %q is not bound here", p.Target.Name)
	}
	item := p.Target.Bound

	if tag := item.Tag(p.Name); tag != nil && tag.HasValue {
		return g.Generate(out, tag.Value)
	}

	switch p.Name {
	case "quote":
		_, err := io.WriteString(out, naming.Quote(item.Name))
		return err
	case "lower":
		_, err := io.WriteString(out, naming.Lower(item.Name))
		return err
	case "upper":
		_, err := io.WriteString(out, naming.Upper(item.Name))
		return err
	case "camel":
		_, err := io.WriteString(out, naming.Camel(item.Name))
		return err
	case "mixed":
		_, err := io.WriteString(out, naming.Mixed(item.Name))
		return err
	}

	return fmt.Errorf("gen: %q is neither a tag on %q nor a built-in transform", p.Name, item.Name)
}

// macroCall binds the macro's declared inputs to this call's argument
// values in a scope nested under the macro's definition scope, then
// re-parses and generates the macro body against it (spec.md §4.5
// "MacroCall").
func (g *Generator) macroCall(out io.Writer, p *ast.MacroCall) error {
	m := p.Macro
	callScope := m.Scope.Push()

	for i, input := range m.Inputs {
		arg := p.Inputs[i]
		switch arg.Kind {
		case ast.KindVariable:
			input.Bound = arg.Payload.(*ast.Variable).Bound
		case ast.KindOutline:
			input.Bound = &ast.OutlineItem{Name: input.Name, Children: arg.Payload.(*ast.Outline)}
		case ast.KindOutlineItem:
			input.Bound = arg.Payload.(*ast.OutlineItem)
		default:
			return fmt.Errorf("gen: macro argument %q must be a variable or an outline", input.Name)
		}
		callScope.Bind(input.Name, ast.Value{Kind: ast.KindVariable, Payload: input})
	}

	body, err := parser.ParseSpan(g.Arena, g.Loader, m.SourceFile, m.Source, m.Body, callScope)
	if err != nil {
		return err
	}
	return g.Generate(out, body)
}

// mapNode dispatches on the bound item the map's variable was already
// bound to by an enclosing for or macro, generating the first matching
// line's (already-parsed) code (spec.md §4.5 "Map").
func (g *Generator) mapNode(out io.Writer, p *ast.Map) error {
	item := p.Item.Bound
	if item == nil {
		return fmt.Errorf("gen: map variable %q is not bound here", p.Item.Name)
	}
	for _, line := range p.Lines {
		if filter.Test(line.Filter, item) {
			return g.Generate(out, line.Code)
		}
	}
	return fmt.Errorf("gen: could not match item %q against map", item.Name)
}

// forItems resolves a For's source to the slice of items it should
// iterate, per spec.md §4.5 "resolve the source to an outline (a Variable
// resolves to v.bound.children; if null, emit nothing)".
func forItems(src ast.Value) []*ast.OutlineItem {
	switch src.Kind {
	case ast.KindOutline:
		return src.Payload.(*ast.Outline).Items
	case ast.KindOutlineItem:
		it := src.Payload.(*ast.OutlineItem)
		if it.Children == nil {
			return nil
		}
		return it.Children.Items
	case ast.KindVariable:
		v := src.Payload.(*ast.Variable)
		if v.Bound == nil || v.Bound.Children == nil {
			return nil
		}
		return v.Bound.Children.Items
	default:
		return nil
	}
}

// forNode iterates a For's source, binding p.Item per accepted item and
// re-parsing/generating the body against a scope extended with that
// binding (spec.md §4.5 "For").
func (g *Generator) forNode(out io.Writer, p *ast.For) error {
	items := forItems(p.Source)
	if items == nil {
		return nil
	}

	order := items
	if p.Reverse {
		order = make([]*ast.OutlineItem, len(items))
		for i, it := range items {
			order[len(items)-1-i] = it
		}
	}

	iterScope := p.Scope.Push()
	iterScope.Bind(p.Item.Name, ast.Value{Kind: ast.KindVariable, Payload: p.Item})

	needComma := false
	for _, item := range order {
		if p.HasFilter && !filter.Test(p.Filter, item) {
			continue
		}
		p.Item.Bound = item

		body, err := parser.ParseSpan(g.Arena, g.Loader, p.SourceFile, p.FullSource, p.Body, iterScope)
		if err != nil {
			return err
		}

		if p.List && needComma {
			if _, err := io.WriteString(out, ","); err != nil {
				return err
			}
		}
		if err := g.Generate(out, body); err != nil {
			return err
		}
		needComma = true
	}
	return nil
}
