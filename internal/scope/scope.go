// Package scope implements the singly-linked chain of named-binding frames
// described in spec.md §3 "Scope" / §4.2: lookup walks the current frame
// first, most-recent-binding-wins, then the outer chain; bind appends to
// the current frame with no duplicate check.
//
// It is generic over the bound value type so that it carries no import on
// package ast — ast's Macro and For nodes hold a *Scope[ast.Value], and
// ast.Scope is a type alias over that instantiation (see ast/scope.go).
// Keeping the generic here (rather than hand-specializing to ast.Value)
// avoids an ast<->scope import cycle while staying a single, reusable
// implementation, in the spirit of the teacher's own small single-purpose
// files (pauldub-sadbox/template/parse/lexer.go's queue/stack types).
package scope

// Scope is a frame of name->value bindings plus a link to its outer frame.
type Scope[V any] struct {
	outer    *Scope[V]
	bindings []binding[V]
}

type binding[V any] struct {
	name  string
	value V
}

// New returns an empty root scope.
func New[V any]() *Scope[V] {
	return &Scope[V]{}
}

// Push returns a new frame nested inside s.
func (s *Scope[V]) Push() *Scope[V] {
	return &Scope[V]{outer: s}
}

// Bind appends a binding to s's own frame. It does not check for an
// existing binding of the same name in this frame: a later Bind of the
// same name simply shadows the earlier one, since Lookup scans most-recent
// first (spec.md §4.2).
func (s *Scope[V]) Bind(name string, v V) {
	s.bindings = append(s.bindings, binding[V]{name: name, value: v})
}

// Lookup searches s's own frame first (most recent binding wins), then
// walks outward through Outer frames.
func (s *Scope[V]) Lookup(name string) (V, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		for i := len(cur.bindings) - 1; i >= 0; i-- {
			if cur.bindings[i].name == name {
				return cur.bindings[i].value, true
			}
		}
	}
	var zero V
	return zero, false
}

// Outer returns s's enclosing frame, or nil at the root.
func (s *Scope[V]) Outer() *Scope[V] {
	return s.outer
}
