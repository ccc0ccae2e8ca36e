// Package queue implements an arena-backed intrusive FIFO list.
//
// Link nodes are allocated from the frame arena, so pushing never touches the
// heap once the arena's blocks are warm. Whole queues can be spliced onto
// each other in O(1), which the evaluator relies on to hand pending children
// between scopes without walking them.
package queue

import (
	"iter"

	"github.com/grindlemire/go-loom/internal/arena"
)

type link[T any] struct {
	value T
	next  *link[T]
}

// Queue is a singly linked FIFO list whose links live in an arena.
// The zero Queue is empty but cannot be pushed to; use New.
//
// A Queue is a small value. Copying it aliases the same links, so a queue
// should have a single owner; use Take to move it.
type Queue[T any] struct {
	head  *link[T]
	tail  *link[T]
	len   int
	arena *arena.Arena
}

// New creates an empty queue allocating from a.
func New[T any](a *arena.Arena) Queue[T] {
	return Queue[T]{arena: a}
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	return q.len
}

// Empty reports whether the queue has no values.
func (q *Queue[T]) Empty() bool {
	return q.len == 0
}

// PushBack appends v at the tail.
func (q *Queue[T]) PushBack(v T) {
	if q.arena == nil {
		panic("queue: PushBack on a queue without an arena")
	}
	l := arena.Alloc(q.arena, link[T]{value: v})
	if q.tail == nil {
		q.head = l
	} else {
		q.tail.next = l
	}
	q.tail = l
	q.len++
}

// PopFront detaches and returns the head value.
func (q *Queue[T]) PopFront() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}
	l := q.head
	q.head = l.next
	if q.head == nil {
		q.tail = nil
	}
	q.len--
	v := l.value
	var zero T
	l.value = zero
	l.next = nil
	return v, true
}

// Front returns the head value without removing it.
func (q *Queue[T]) Front() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}
	return q.head.value, true
}

// Append splices other onto the tail of q in O(1) and leaves other empty.
func (q *Queue[T]) Append(other *Queue[T]) {
	if other == q || other.len == 0 {
		return
	}
	if q.tail == nil {
		q.head = other.head
	} else {
		q.tail.next = other.head
	}
	q.tail = other.tail
	q.len += other.len
	if q.arena == nil {
		q.arena = other.arena
	}
	other.head, other.tail, other.len = nil, nil, 0
}

// Prepend splices other onto the head of q in O(1) and leaves other empty.
func (q *Queue[T]) Prepend(other *Queue[T]) {
	if other == q || other.len == 0 {
		return
	}
	if q.head == nil {
		q.tail = other.tail
	} else {
		other.tail.next = q.head
	}
	q.head = other.head
	q.len += other.len
	if q.arena == nil {
		q.arena = other.arena
	}
	other.head, other.tail, other.len = nil, nil, 0
}

// Take moves the whole queue out, leaving q empty but still bound to its arena.
func (q *Queue[T]) Take() Queue[T] {
	out := *q
	q.head, q.tail, q.len = nil, nil, 0
	return out
}

// All iterates the values in order without consuming them.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for l := q.head; l != nil; l = l.next {
			if !yield(l.value) {
				return
			}
		}
	}
}

// Drain pops values in order as they are yielded. Values not reached because
// the loop stopped early remain queued.
func (q *Queue[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := q.PopFront()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Slice copies the values into a new slice. Intended for tests and debugging.
func (q *Queue[T]) Slice() []T {
	out := make([]T, 0, q.len)
	for v := range q.All() {
		out = append(out, v)
	}
	return out
}
