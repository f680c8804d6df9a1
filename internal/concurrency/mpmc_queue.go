// File: internal/concurrency/mpmc_queue.go
// Package concurrency provides lock-free handoff primitives.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded multi-producer/multi-consumer queue with per-cell sequence numbers.

package concurrency

import "sync/atomic"

const cacheLinePad = 64

// MPMCQueue is a bounded lock-free queue in the style of Dmitry Vyukov's MPMC ring.
// Any number of goroutines may call TryEnqueue and TryDequeue concurrently.
type MPMCQueue[T any] struct {
	enqPos atomic.Uint64
	_      [cacheLinePad - 8]byte
	deqPos atomic.Uint64
	_      [cacheLinePad - 8]byte
	mask   uint64
	slots  []slot[T]
}

type slot[T any] struct {
	seq atomic.Uint64
	val T
}

// NewMPMCQueue creates a queue whose capacity is rounded up to a power of two (minimum 2).
func NewMPMCQueue[T any](capacity int) *MPMCQueue[T] {
	size := 2
	for size < capacity {
		size <<= 1
	}
	q := &MPMCQueue[T]{
		mask:  uint64(size - 1),
		slots: make([]slot[T], size),
	}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// TryEnqueue appends v; returns false if the queue is full.
func (q *MPMCQueue[T]) TryEnqueue(v T) bool {
	for {
		pos := q.enqPos.Load()
		s := &q.slots[pos&q.mask]
		diff := int64(s.seq.Load()) - int64(pos)
		switch {
		case diff == 0:
			if q.enqPos.CompareAndSwap(pos, pos+1) {
				s.val = v
				s.seq.Store(pos + 1)
				return true
			}
		case diff < 0:
			return false
		}
	}
}

// TryDequeue removes the oldest item; ok is false if the queue is empty.
func (q *MPMCQueue[T]) TryDequeue() (v T, ok bool) {
	for {
		pos := q.deqPos.Load()
		s := &q.slots[pos&q.mask]
		diff := int64(s.seq.Load()) - int64(pos+1)
		switch {
		case diff == 0:
			if q.deqPos.CompareAndSwap(pos, pos+1) {
				v = s.val
				var zero T
				s.val = zero
				s.seq.Store(pos + q.mask + 1)
				return v, true
			}
		case diff < 0:
			return v, false
		}
	}
}

// Cap returns the rounded capacity.
func (q *MPMCQueue[T]) Cap() int {
	return len(q.slots)
}
