package parser

import (
	"fmt"

	"github.com/swansontec/outline2c-sub000/internal/strview"
)

// SourceError is a fatal parse/generation error carrying a source location,
// formatted per spec.md §6: "path:line:col: error: message".
//
// Grounded on the teacher's parser.errorf/recover pattern
// (pauldub-sadbox/template/parse/parse.go): internal routines call errorf,
// which panics; the outermost entry point per top-level value recovers the
// panic into a normal error return (spec.md §7 "all errors are reported...
// then the driver returns a non-zero status"), so every nested parse
// routine can fail with one call instead of threading error returns
// through the whole recursive-descent tree.
type SourceError struct {
	File    string
	Pos     strview.Position
	Message string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s:%d:%d: error: %s", e.File, e.Pos.Line, e.Pos.Column, e.Message)
}

// errorf panics with a *SourceError positioned at byte offset pos in p's
// source. It is always called from within a function that is, directly or
// transitively, invoked under recoverError.
func (p *Parser) errorf(pos int, format string, args ...any) {
	panic(&SourceError{
		File:    p.File,
		Pos:     strview.PositionOf(p.Source, pos),
		Message: fmt.Sprintf(format, args...),
	})
}

// recoverError turns a panicked *SourceError into a returned error. Any
// other panic (a real programming bug) is re-raised, mirroring the
// teacher's parser.recover, which re-panics non-error values.
func recoverError(errp *error) {
	if r := recover(); r != nil {
		if err, ok := r.(*SourceError); ok {
			*errp = err
			return
		}
		panic(r)
	}
}
