package ast

// List is the append-friendly linked-list builder spec.md §3 describes for
// assembling node sequences (a file's top-level values, a For/Macro body's
// top-level values, a MapLine's code). It is a singly linked list with a
// tracked tail so Append is O(1), mirroring the arena-allocated list-node
// pattern the original C source uses for the same purpose (spec.md §2
// item 6); ToSlice flattens it for the generator and tests, which only
// ever need ordered iteration.
type List struct {
	head, tail *listNode
	len        int
}

type listNode struct {
	value Value
	next  *listNode
}

// Append adds v to the end of the list.
func (l *List) Append(v Value) {
	n := &listNode{value: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.len++
}

// Len returns the number of elements appended so far.
func (l *List) Len() int { return l.len }

// ToSlice returns the list's elements in append order.
func (l *List) ToSlice() []Value {
	out := make([]Value, 0, l.len)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}
