package parser

import "github.com/swansontec/outline2c-sub000/internal/ast"

// Emitter accepts produced Values (spec.md §4.3, §9 "Output routine": a
// thin interface with two implementations, one for a single-value receiver
// and one for a list-builder receiver, standing in for the original's
// function-pointer-pair OutRoutine).
type Emitter interface {
	Accept(v ast.Value) error
}

// single captures exactly one Value; a second Accept call is a protocol
// error (a parse routine trying to emit twice into a single-value sink
// indicates a bug in this package, not in the input, so it is reported the
// same way any other internal invariant violation would be).
type single struct {
	value ast.Value
	set   bool
}

func newSingle() *single { return &single{} }

func (s *single) Accept(v ast.Value) error {
	if s.set {
		return errProtocolDoubleEmit
	}
	s.value = v
	s.set = true
	return nil
}

// list appends every emitted Value, in order, to an ast.List.
type list struct {
	l *ast.List
}

func newList(l *ast.List) *list { return &list{l: l} }

func (s *list) Accept(v ast.Value) error {
	s.l.Append(v)
	return nil
}

var errProtocolDoubleEmit = protocolError("parser: single-value sink received a second value")

type protocolError string

func (e protocolError) Error() string { return string(e) }
