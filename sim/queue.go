// Implements the FIFO wait queues that resources and stores park processes in.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of parked entries. Resources queue bare processes;
// stores queue processes together with the amount they asked for.
type WaitQueue[T any] struct {
	queue []T
}

// Enqueue adds an entry to the back of the wait queue.
func (wq *WaitQueue[T]) Enqueue(v T) {
	wq.queue = append(wq.queue, v)
}

func (wq *WaitQueue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of entries in the queue.
func (wq *WaitQueue[T]) Len() int {
	return len(wq.queue)
}

// Peek returns the entry at the front of the queue without removing it.
// ok is false if the queue is empty.
func (wq *WaitQueue[T]) Peek() (v T, ok bool) {
	if len(wq.queue) == 0 {
		return v, false
	}
	return wq.queue[0], true
}

// Dequeue removes and returns the entry at the front of the queue.
// ok is false if the queue is empty.
func (wq *WaitQueue[T]) Dequeue() (v T, ok bool) {
	if len(wq.queue) == 0 {
		return v, false
	}
	v = wq.queue[0]
	var zero T
	wq.queue[0] = zero
	wq.queue = wq.queue[1:]
	return v, true
}
