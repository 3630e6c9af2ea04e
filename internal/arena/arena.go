// Package arena implements the bump allocator that backs a single
// outline2c invocation. The parser copies each source buffer it parses into
// the Arena (see parser.ParseTop); Values, list nodes and scope frames are
// ordinary Go allocations. Nothing is freed individually, the whole thing is
// released at once when the driver exits.
package arena

import "fmt"

// defaultChunkSize is the size of each backing []byte block. Allocations
// larger than this get their own dedicated chunk.
const defaultChunkSize = 64 * 1024

// unbounded is the maxSize value meaning no cap on the total number of bytes
// an Arena will hand out. The driver sets a nonzero cap only when
// -max-arena-bytes or the config's max_arena_bytes asks for one.
const unbounded = 0

// Arena is a bump allocator. It is not safe for concurrent use; outline2c's
// pipeline is single-threaded end to end (spec.md §5).
type Arena struct {
	chunks    [][]byte
	cur       []byte
	used      int
	total     int
	maxSize   int
	chunkSize int
}

// New returns an Arena with the default chunk size and no size cap.
func New() *Arena {
	return &Arena{chunkSize: defaultChunkSize, maxSize: unbounded}
}

// NewBounded returns an Arena that fails allocations once it has handed out
// maxSize bytes in total. Used to exercise the OOM error path (spec.md §7)
// without actually exhausting process memory.
func NewBounded(maxSize int) *Arena {
	return &Arena{chunkSize: defaultChunkSize, maxSize: maxSize}
}

// ErrOOM is returned by AllocBytes and NewString when the arena's size cap
// would be exceeded.
var ErrOOM = fmt.Errorf("arena: allocation would exceed size limit")

// AllocBytes returns a zeroed byte slice of length n backed by the arena.
// The returned slice must not be retained past the arena's lifetime in any
// way that outlives the driver invocation that created it — by
// construction nothing in this repository does, since the arena itself is
// owned exclusively by the driver (spec.md §5).
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	if n == 0 {
		return nil, nil
	}
	if a.maxSize != unbounded && a.total+n > a.maxSize {
		return nil, ErrOOM
	}
	if a.cur == nil || len(a.cur)-a.used < n {
		size := a.chunkSize
		if n > size {
			size = n
		}
		a.cur = make([]byte, size)
		a.used = 0
		a.chunks = append(a.chunks, a.cur)
	}
	b := a.cur[a.used : a.used+n : a.used+n]
	a.used += n
	a.total += n
	return b, nil
}

// NewString copies s into arena-owned storage and returns it as a Go
// string (Go strings are immutable, so no separate String-view wrapper
// type is needed the way the original C source needs one — see
// internal/strview for the cursor/span type that replaces it for
// in-progress scans).
func (a *Arena) NewString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := a.AllocBytes(len(s))
	if err != nil {
		return "", err
	}
	copy(b, s)
	return string(b), nil
}

// MustNewString is NewString for call sites that have already proven the
// arena is unbounded; it panics with ErrOOM if a cap is exceeded.
func (a *Arena) MustNewString(s string) string {
	v, err := a.NewString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Stats reports cumulative allocation for diagnostics (-d dumps, tests).
func (a *Arena) Stats() (chunks, totalBytes int) {
	return len(a.chunks), a.total
}
