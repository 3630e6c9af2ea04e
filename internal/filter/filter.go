// Package filter implements the filter evaluator (spec.md §4.4): testing a
// filter expression against an outline item, used by map, for...with and
// union...with.
package filter

import "github.com/swansontec/outline2c-sub000/internal/ast"

// Test reports whether item satisfies filter expr (spec.md §4.4, §8
// "Filter semantics").
func Test(expr ast.Value, item *ast.OutlineItem) bool {
	switch expr.Kind {
	case ast.KindFilterTag:
		name := expr.Payload.(*ast.FilterTag).Name
		return item.HasTag(name)
	case ast.KindFilterAny:
		return true
	case ast.KindFilterNot:
		return !Test(expr.Payload.(*ast.FilterNot).Child, item)
	case ast.KindFilterAnd:
		p := expr.Payload.(*ast.FilterAnd)
		return Test(p.A, item) && Test(p.B, item)
	case ast.KindFilterOr:
		p := expr.Payload.(*ast.FilterOr)
		return Test(p.A, item) || Test(p.B, item)
	default:
		panic("filter: not a filter expression: " + expr.Kind.String())
	}
}
