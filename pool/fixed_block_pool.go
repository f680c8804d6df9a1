// File: pool/fixed_block_pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Free blocks form an intrusive singly linked list (Treiber stack) threaded
// through the link word at the start of every slot. The head word packs a
// 32-bit modification tag with the head slot reference so that a slot popped
// and pushed back between a Load and a CompareAndSwap fails the swap.

package pool

import (
	"math"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/momentics/hioload-blockpool/api"
)

const (
	// linkWidth is the size of the link word preceding every payload.
	linkWidth = 8

	// MaxCapacity is the largest supported number of blocks.
	MaxCapacity = math.MaxInt32

	cacheLinePad = 64

	emptyRef     = 0
	genShift     = 32
	genMask      = 1<<31 - 1
	allocatedBit = 1 << 63
)

// Slot link word: allocatedBit | gen<<32 | next ref. Refs are index+1, 0 ends the chain.
// Head word: tag<<32 | ref.

func packHead(tag, ref uint32) uint64 { return uint64(tag)<<32 | uint64(ref) }

func headTag(h uint64) uint32 { return uint32(h >> 32) }

func linkGen(w uint64) uint32 { return uint32(w>>genShift) & genMask }

// FixedBlockPool hands out blocks of a fixed size from a preallocated arena
// without locks. Alloc and Recycle may be called from any goroutine.
type FixedBlockPool struct {
	head atomic.Uint64
	_    [cacheLinePad - 8]byte

	// used is maintained apart from head and may briefly disagree with the free chain.
	used atomic.Int64
	_    [cacheLinePad - 8]byte

	allocs   atomic.Uint64
	recycles atomic.Uint64
	misses   atomic.Uint64
	retries  atomic.Uint64

	buf       []byte
	arena     *arena
	capacity  int
	blockSize int
	stride    int
	debug     bool
	log       *zap.Logger
	closed    atomic.Bool
}

var _ api.BlockPoolInspector = (*FixedBlockPool)(nil)

// New builds a pool of capacity blocks, each with blockSize payload bytes.
// It fails with api.ErrInvalidConfig for a non-positive blockSize or a capacity
// outside [0, MaxCapacity], and with api.ErrOutOfMemory when the arena cannot be
// allocated. A zero capacity yields a pool that is always exhausted.
func New(capacity, blockSize int, opts ...Option) (*FixedBlockPool, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = zap.L()
	}

	if blockSize <= 0 {
		return nil, invalidConfig("block size must be positive", capacity, blockSize)
	}
	if capacity < 0 || capacity > MaxCapacity {
		return nil, invalidConfig("capacity out of range", capacity, blockSize).
			WithContext("max_capacity", MaxCapacity)
	}

	stride, size, ok := arenaSize(capacity, blockSize)
	if !ok {
		return nil, outOfMemory("arena size overflows", capacity, blockSize)
	}
	if o.memoryLimit > 0 && size > o.memoryLimit {
		return nil, outOfMemory("arena exceeds memory limit", capacity, blockSize).
			WithContext("bytes", size).
			WithContext("memory_limit", o.memoryLimit)
	}
	a, err := newArena(size, o.backing, log)
	if err != nil {
		log.Error("blockpool: arena allocation failed",
			zap.Int("capacity", capacity), zap.Int("block_size", blockSize), zap.Error(err))
		return nil, outOfMemory("arena allocation failed", capacity, blockSize).
			WithContext("bytes", size).
			WithCause(err)
	}

	p := &FixedBlockPool{
		buf:       a.buf,
		arena:     a,
		capacity:  capacity,
		blockSize: blockSize,
		stride:    stride,
		debug:     o.debugChecks,
		log:       log,
	}
	for i := 0; i < capacity; i++ {
		next := uint32(i + 2)
		if i == capacity-1 {
			next = emptyRef
		}
		atomic.StoreUint64(p.link(i), uint64(next))
	}
	if capacity > 0 {
		p.head.Store(packHead(0, 1))
	}

	log.Info("blockpool: created",
		zap.Int("capacity", capacity),
		zap.Int("block_size", blockSize),
		zap.Int("stride", stride),
		zap.Int("bytes", size),
		zap.Stringer("backing", a.backing),
		zap.Bool("debug_checks", o.debugChecks))
	return p, nil
}

// arenaSize rounds blockSize+linkWidth up to the link alignment and multiplies
// by capacity, reporting overflow.
func arenaSize(capacity, blockSize int) (stride, size int, ok bool) {
	if blockSize > math.MaxInt-2*linkWidth {
		return 0, 0, false
	}
	stride = (blockSize + linkWidth + linkWidth - 1) &^ (linkWidth - 1)
	if capacity != 0 && stride > math.MaxInt/capacity {
		return 0, 0, false
	}
	return stride, capacity * stride, true
}

// link returns the link word of slot i. The arena base and stride are both
// multiples of linkWidth, so the word is aligned for 64-bit atomics.
func (p *FixedBlockPool) link(i int) *uint64 {
	return (*uint64)(unsafe.Pointer(&p.buf[i*p.stride]))
}

func (p *FixedBlockPool) payload(i int) []byte {
	off := i*p.stride + linkWidth
	return p.buf[off : off+p.blockSize : off+p.blockSize]
}

// Alloc pops a free block. ok is false when the pool is exhausted; that is
// backpressure for the caller, not an error.
func (p *FixedBlockPool) Alloc() (b Block, ok bool) {
	for {
		head := p.head.Load()
		ref := uint32(head)
		if ref == emptyRef {
			p.misses.Add(1)
			return Block{}, false
		}
		idx := int(ref - 1)
		lnk := p.link(idx)
		next := uint32(atomic.LoadUint64(lnk))
		if p.head.CompareAndSwap(head, packHead(headTag(head)+1, next)) {
			gen := (linkGen(atomic.LoadUint64(lnk)) + 1) & genMask
			atomic.StoreUint64(lnk, allocatedBit|uint64(gen)<<genShift)
			p.used.Add(1)
			p.allocs.Add(1)
			return Block{data: p.payload(idx), index: uint32(idx), gen: gen}, true
		}
		p.retries.Add(1)
	}
}

// Recycle pushes b back onto the free chain.
//
// b must come from a successful Alloc on this pool and must not have been
// recycled already; the caller must not touch its payload afterwards. These
// preconditions are only verified when the pool was built WithDebugChecks,
// in which case a violation panics with an *api.Error.
func (p *FixedBlockPool) Recycle(b Block) {
	if p.debug {
		p.checkRecycle(b)
	}
	// Decrement before the push: the block stays counted only while it is
	// allocated, which keeps InUsedNum within [0, Capacity].
	p.used.Add(-1)
	p.recycles.Add(1)
	lnk := p.link(int(b.index))
	gen := uint64(b.gen&genMask) << genShift
	ref := b.index + 1
	for {
		head := p.head.Load()
		atomic.StoreUint64(lnk, gen|uint64(uint32(head)))
		if p.head.CompareAndSwap(head, packHead(headTag(head)+1, ref)) {
			return
		}
		p.retries.Add(1)
	}
}

// checkRecycle verifies ownership and clears the allocated bit in one CAS,
// so two racing recycles of the same block cannot both pass.
func (p *FixedBlockPool) checkRecycle(b Block) {
	idx := int(b.index)
	if b.data == nil || idx >= p.capacity ||
		unsafe.SliceData(b.data) != unsafe.SliceData(p.payload(idx)) {
		p.misuse(api.NewError(api.ErrCodeForeignBlock, api.ErrForeignBlock.Error()).
			WithContext("index", idx))
	}
	want := allocatedBit | uint64(b.gen&genMask)<<genShift
	if !atomic.CompareAndSwapUint64(p.link(idx), want, uint64(b.gen&genMask)<<genShift) {
		p.misuse(api.NewError(api.ErrCodeDoubleRecycle, api.ErrDoubleRecycle.Error()).
			WithContext("index", idx).
			WithContext("generation", b.gen).
			WithContext("slot_generation", linkGen(atomic.LoadUint64(p.link(idx)))))
	}
}

func (p *FixedBlockPool) misuse(err *api.Error) {
	p.log.Error("blockpool: recycle precondition violated",
		zap.Int("capacity", p.capacity),
		zap.Int("block_size", p.blockSize),
		zap.Any("context", err.Context),
		zap.Error(err))
	panic(err)
}

// Capacity returns the fixed number of blocks.
func (p *FixedBlockPool) Capacity() int { return p.capacity }

// BlockSize returns the payload size of every block.
func (p *FixedBlockPool) BlockSize() int { return p.blockSize }

// Stride returns the distance in bytes between consecutive slots.
func (p *FixedBlockPool) Stride() int { return p.stride }

// Offset returns the arena offset of b's payload: Index()*Stride() + link width.
func (p *FixedBlockPool) Offset(b Block) int { return int(b.index)*p.stride + linkWidth }

// InUsedNum returns the number of outstanding blocks. It is a diagnostic:
// a value below Capacity does not guarantee the next Alloc succeeds.
func (p *FixedBlockPool) InUsedNum() int64 { return p.used.Load() }

// Stats returns an accounting snapshot.
func (p *FixedBlockPool) Stats() api.BlockPoolStats {
	return api.BlockPoolStats{
		Capacity:     p.capacity,
		BlockSize:    p.blockSize,
		Stride:       p.stride,
		InUse:        p.used.Load(),
		TotalAlloc:   p.allocs.Load(),
		TotalRecycle: p.recycles.Load(),
		Exhausted:    p.misses.Load(),
		CASRetries:   p.retries.Load(),
		Backing:      p.arena.backing.String(),
	}
}

// Close releases the arena. It fails with api.ErrBlocksOutstanding while
// InUsedNum is non-zero. After Close every Alloc reports exhaustion.
// Closing twice is a no-op.
func (p *FixedBlockPool) Close() error {
	if p.closed.Load() {
		return nil
	}
	if n := p.used.Load(); n != 0 {
		return api.NewError(api.ErrCodeBlocksOutstanding, api.ErrBlocksOutstanding.Error()).
			WithContext("in_use", n)
	}
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	for {
		head := p.head.Load()
		if p.head.CompareAndSwap(head, packHead(headTag(head)+1, emptyRef)) {
			break
		}
	}
	err := p.arena.free()
	p.log.Info("blockpool: closed",
		zap.Int("capacity", p.capacity),
		zap.Uint64("total_alloc", p.allocs.Load()),
		zap.Error(err))
	return err
}

func outOfMemory(msg string, capacity, blockSize int) *api.Error {
	return api.NewError(api.ErrCodeOutOfMemory, "blockpool: "+msg).
		WithContext("capacity", capacity).
		WithContext("block_size", blockSize)
}
