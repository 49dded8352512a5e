package queue

// SortedList is an insertion-sorted intrusive list: for any two adjacent
// elements prev, next, prev.LessOrEqual(next) holds. The zero value is an
// empty, ready-to-use list.
type SortedList[T Ordered[T]] struct {
	head, tail T
	length     int
}

// Len returns the number of elements currently held. O(1).
func (l *SortedList[T]) Len() int { return l.length }

// Empty reports whether the list holds no elements. O(1).
func (l *SortedList[T]) Empty() bool { return l.length == 0 }

// Insert places n so that key(prev) <= key(n) <= key(next) is preserved.
// O(n) worst case (the list is singly-linked and unindexed).
func (l *SortedList[T]) Insert(n T) {
	var zero T
	n.SetNext(zero)

	var prev T
	cur := l.head
	for cur != zero && cur.LessOrEqual(n) {
		prev = cur
		cur = cur.Next()
	}

	if prev == zero {
		n.SetNext(l.head)
		l.head = n
	} else {
		n.SetNext(cur)
		prev.SetNext(n)
	}
	if cur == zero {
		l.tail = n
	}
	l.length++
}

// Dequeue removes and returns the lowest-keyed (head) element. O(1).
func (l *SortedList[T]) Dequeue() (n T, ok bool) {
	var zero T
	if l.length == 0 {
		return zero, false
	}
	n = l.head
	l.head = n.Next()
	if l.length == 1 {
		l.tail = zero
	}
	n.SetNext(zero)
	l.length--
	return n, true
}

// Append splices other's elements onto l, preserving sorted order under the
// assumption that every element of other is >= l's tail (callers violating
// this get an unsorted splice, same as the source design's O(1) append).
func (l *SortedList[T]) Append(other *SortedList[T]) {
	var zero T
	if other.length == 0 {
		return
	}
	if l.length == 0 {
		l.head = other.head
	} else {
		l.tail.SetNext(other.head)
	}
	l.tail = other.tail
	l.length += other.length
	other.head, other.tail, other.length = zero, zero, 0
}

// Remove walks the list once, splitting out every element matching pred
// into a newly returned SortedList (relative order, hence still sorted),
// while non-matching elements remain in l in original order. O(n).
func (l *SortedList[T]) Remove(pred func(T) bool) *SortedList[T] {
	var zero T
	matched := &SortedList[T]{}
	var keptHead, keptTail T
	keptLen := 0

	cur := l.head
	for cur != zero {
		next := cur.Next()
		cur.SetNext(zero)
		if pred(cur) {
			// Relative order is preserved, so a plain tail-append keeps
			// matched sorted without recomparing keys.
			if matched.length == 0 {
				matched.head = cur
			} else {
				matched.tail.SetNext(cur)
			}
			matched.tail = cur
			matched.length++
		} else {
			if keptLen == 0 {
				keptHead = cur
			} else {
				keptTail.SetNext(cur)
			}
			keptTail = cur
			keptLen++
		}
		cur = next
	}

	l.head, l.tail, l.length = keptHead, keptTail, keptLen
	return matched
}

// RemoveAll transfers every element out of l into a newly returned
// SortedList, leaving l empty. O(1).
func (l *SortedList[T]) RemoveAll() *SortedList[T] {
	var zero T
	out := &SortedList[T]{head: l.head, tail: l.tail, length: l.length}
	l.head, l.tail, l.length = zero, zero, 0
	return out
}
