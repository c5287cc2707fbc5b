package queue

// FIFO is a first-in first-out queue.
type FIFO[T any] struct {
	items []T
}

// Enqueue appends item to the tail.
func (q *FIFO[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the head item.
func (q *FIFO[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Peek returns the head item without removing it.
func (q *FIFO[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Remove deletes the first item matching the predicate.
func (q *FIFO[T]) Remove(match func(T) bool) bool {
	for i, item := range q.items {
		if match(item) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *FIFO[T]) IsEmpty() bool { return len(q.items) == 0 }

func (q *FIFO[T]) Len() int { return len(q.items) }

// Items returns a copy of queued items, head first.
func (q *FIFO[T]) Items() []T {
	ret := make([]T, len(q.items))
	copy(ret, q.items)
	return ret
}

// Clear drops all items.
func (q *FIFO[T]) Clear() {
	q.items = nil
}

// New creates an empty queue.
func New[T any]() *FIFO[T] {
	return &FIFO[T]{}
}
