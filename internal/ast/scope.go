package ast

import "github.com/swansontec/outline2c-sub000/internal/scope"

// Scope is scope.Scope instantiated over Value — see package scope for the
// push/bind/lookup semantics (spec.md §3 "Scope", §4.2).
type Scope = scope.Scope[Value]

// NewScope returns an empty root scope.
func NewScope() *Scope {
	return scope.New[Value]()
}

// NewRootScope returns the root scope every top-level parse starts from,
// with the six built-in directive keywords bound (spec.md §4.2
// scope_init_root). internal/parser's parseValue switches on these
// Keyword payloads to dispatch to the matching parse routine.
func NewRootScope() *Scope {
	s := NewScope()
	for _, k := range []Keyword{
		KeywordMacro, KeywordOutline, KeywordUnion,
		KeywordMap, KeywordFor, KeywordInclude,
	} {
		s.Bind(string(k), Value{Kind: KindKeyword, Payload: k})
	}
	return s
}
