package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// elem is a minimal intrusive Linkable used only to exercise Queue/SortedList.
type elem struct {
	id   int
	key  int
	next *elem
}

func (e *elem) Next() *elem      { return e.next }
func (e *elem) SetNext(n *elem)  { e.next = n }
func (e *elem) LessOrEqual(o *elem) bool { return e.key <= o.key }

func ids(q *Queue[*elem]) []int {
	var out []int
	for cur, ok := q.Dequeue(); ok; cur, ok = q.Dequeue() {
		out = append(out, cur.id)
	}
	return out
}

func TestQueue_EnqueueDequeueOrder(t *testing.T) {
	var q Queue[*elem]
	a, b, c := &elem{id: 1}, &elem{id: 2}, &elem{id: 3}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)
	require.Equal(t, 3, q.Len())
	require.Equal(t, []int{1, 2, 3}, ids(&q))
	require.True(t, q.Empty())
}

func TestQueue_DequeueEmpty(t *testing.T) {
	var q Queue[*elem]
	_, ok := q.Dequeue()
	require.False(t, ok)
}

func TestQueue_Append(t *testing.T) {
	var q1, q2 Queue[*elem]
	q1.Enqueue(&elem{id: 1})
	q1.Enqueue(&elem{id: 2})
	q2.Enqueue(&elem{id: 3})
	q2.Enqueue(&elem{id: 4})

	q1.Append(&q2)
	require.Equal(t, 0, q2.Len())
	require.True(t, q2.Empty())
	require.Equal(t, []int{1, 2, 3, 4}, ids(&q1))
}

func TestQueue_AppendEmptyOther(t *testing.T) {
	var q1, q2 Queue[*elem]
	q1.Enqueue(&elem{id: 1})
	q1.Append(&q2)
	require.Equal(t, []int{1}, ids(&q1))
}

func TestQueue_RemovePredicate(t *testing.T) {
	var q Queue[*elem]
	for i := 1; i <= 5; i++ {
		q.Enqueue(&elem{id: i})
	}
	matched := q.Remove(func(e *elem) bool { return e.id%2 == 0 })
	require.Equal(t, []int{2, 4}, ids(matched))
	require.Equal(t, []int{1, 3, 5}, ids(&q))
}

func TestQueue_RemoveIsUnionOfOriginal(t *testing.T) {
	var q Queue[*elem]
	for i := 1; i <= 6; i++ {
		q.Enqueue(&elem{id: i})
	}
	matched := q.Remove(func(e *elem) bool { return e.id <= 3 })

	seen := map[int]bool{}
	for _, id := range ids(matched) {
		seen[id] = true
	}
	for _, id := range ids(&q) {
		seen[id] = true
	}
	require.Len(t, seen, 6)
}

func TestQueue_RemoveAll(t *testing.T) {
	var q Queue[*elem]
	q.Enqueue(&elem{id: 1})
	q.Enqueue(&elem{id: 2})
	all := q.RemoveAll()
	require.True(t, q.Empty())
	require.Equal(t, []int{1, 2}, ids(all))
}

func TestQueue_EnqueueDequeueIsIdentity(t *testing.T) {
	var q Queue[*elem]
	in := []int{9, 1, 4, 7}
	for _, id := range in {
		q.Enqueue(&elem{id: id})
	}
	require.Equal(t, in, ids(&q))
}
