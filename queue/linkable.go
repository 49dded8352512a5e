package queue

// Linkable is implemented by the intrusive link carried inside a queue
// element's own pointer type. T is the element's pointer type itself (e.g.
// *task.TCB), so the link lives inside the payload rather than in a
// separate wrapper node.
type Linkable[T any] interface {
	comparable
	// Next returns the element currently linked after this one, or the
	// zero value of T if this is the tail.
	Next() T
	// SetNext rewires the link after this element.
	SetNext(T)
}

// Ordered extends Linkable with the relation a SortedList inserts by:
// LessOrEqual(other) reports whether this element's key is <= other's,
// i.e. whether this element may precede other in sorted order.
type Ordered[T any] interface {
	Linkable[T]
	LessOrEqual(other T) bool
}
