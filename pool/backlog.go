// File: pool/backlog.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backlog is one backpressure policy for exhausted pools: park the work and
// retry when blocks come back, instead of dropping it.

package pool

import "github.com/eapache/queue"

// Backlog is a FIFO of work items waiting for a block. It belongs to a single
// goroutine; share it only under external synchronization.
type Backlog[T any] struct {
	q *queue.Queue
}

// NewBacklog returns an empty backlog.
func NewBacklog[T any]() *Backlog[T] {
	return &Backlog[T]{q: queue.New()}
}

// Defer parks item until Drain finds a block for it. Items are queued by
// pointer so a nil interface value survives the round trip.
func (b *Backlog[T]) Defer(item T) {
	b.q.Add(&item)
}

// Len returns the number of parked items.
func (b *Backlog[T]) Len() int {
	return b.q.Length()
}

// Drain allocates blocks for parked items in arrival order and hands each pair
// to fn. It stops when the backlog is empty or the pool is exhausted and
// returns how many items were dispatched.
func (b *Backlog[T]) Drain(p *FixedBlockPool, fn func(item T, blk Block)) int {
	n := 0
	for b.q.Length() > 0 {
		blk, ok := p.Alloc()
		if !ok {
			break
		}
		item := b.q.Remove().(*T)
		fn(*item, blk)
		n++
	}
	return n
}
