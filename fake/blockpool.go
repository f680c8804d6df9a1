// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"

	"github.com/momentics/hioload-blockpool/api"
)

// BlockPool is a mutex-guarded reference pool for tests. It hands out slot
// indices with the same LIFO order as the lock-free pool when driven from a
// single goroutine, and checks every recycle.
type BlockPool struct {
	mu        sync.Mutex
	free      []int
	allocated []bool
	blockSize int
	allocs    uint64
	recycles  uint64
	misses    uint64
}

var _ api.BlockPoolInspector = (*BlockPool)(nil)

// NewBlockPool builds a pool whose free stack pops 0, 1, ..., capacity-1 first.
func NewBlockPool(capacity, blockSize int) *BlockPool {
	free := make([]int, capacity)
	for i := range free {
		free[i] = capacity - 1 - i
	}
	return &BlockPool{
		free:      free,
		allocated: make([]bool, capacity),
		blockSize: blockSize,
	}
}

// Alloc pops a slot index; ok is false when none is free.
func (f *BlockPool) Alloc() (idx int, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.free) == 0 {
		f.misses++
		return -1, false
	}
	idx = f.free[len(f.free)-1]
	f.free = f.free[:len(f.free)-1]
	f.allocated[idx] = true
	f.allocs++
	return idx, true
}

// Recycle pushes idx back. It returns api.ErrDoubleRecycle or
// api.ErrForeignBlock instead of corrupting its state.
func (f *BlockPool) Recycle(idx int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx < 0 || idx >= len(f.allocated) {
		return api.NewError(api.ErrCodeForeignBlock, api.ErrForeignBlock.Error()).WithContext("index", idx)
	}
	if !f.allocated[idx] {
		return api.NewError(api.ErrCodeDoubleRecycle, api.ErrDoubleRecycle.Error()).WithContext("index", idx)
	}
	f.allocated[idx] = false
	f.free = append(f.free, idx)
	f.recycles++
	return nil
}

func (f *BlockPool) Capacity() int  { return len(f.allocated) }
func (f *BlockPool) BlockSize() int { return f.blockSize }

func (f *BlockPool) InUsedNum() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.allocated) - len(f.free))
}

func (f *BlockPool) Stats() api.BlockPoolStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return api.BlockPoolStats{
		Capacity:     len(f.allocated),
		BlockSize:    f.blockSize,
		InUse:        int64(len(f.allocated) - len(f.free)),
		TotalAlloc:   f.allocs,
		TotalRecycle: f.recycles,
		Exhausted:    f.misses,
		Backing:      "fake",
	}
}
