// File: pool/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// Block is a handle to one allocated slot of a FixedBlockPool.
// The zero Block is what a failed Alloc returns and must not be recycled.
type Block struct {
	data  []byte
	index uint32
	gen   uint32
}

// Bytes returns the payload. len and cap both equal the pool's block size,
// so appending never spills into a neighbouring slot.
func (b Block) Bytes() []byte { return b.data }

// Index returns the slot index in [0, capacity).
func (b Block) Index() int { return int(b.index) }

// Generation returns how many times the slot had been handed out when b was allocated.
func (b Block) Generation() uint32 { return b.gen }

// Valid reports whether b came from a successful Alloc.
func (b Block) Valid() bool { return b.data != nil }
