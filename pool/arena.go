// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backing storage for FixedBlockPool: one contiguous, 8-byte aligned region
// allocated once and released once.

package pool

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"
)

var (
	errMmapUnsupported = errors.New("anonymous mapping not supported on this platform")
	errExceedsMemory   = errors.New("arena larger than physical memory")
)

type arena struct {
	buf     []byte
	backing Backing
	release func() error
}

// newArena allocates size bytes. Requests larger than physical memory are
// refused up front: the Go runtime aborts the process on heap exhaustion and
// an overcommitted mapping fails later on first touch. Only a platform without
// anonymous mappings falls back from mmap to the heap; any other mapping
// failure is returned.
func newArena(size int, backing Backing, log *zap.Logger) (*arena, error) {
	if size == 0 {
		return &arena{backing: backing}, nil
	}
	if total, ok := physicalMemory(); ok && uint64(size) > total {
		return nil, fmt.Errorf("%w: %d bytes requested, %d available", errExceedsMemory, size, total)
	}
	if backing == BackingMmap {
		buf, release, err := mapAnonymous(size)
		switch {
		case err == nil:
			return &arena{buf: buf, backing: BackingMmap, release: release}, nil
		case !errors.Is(err, errMmapUnsupported):
			return nil, fmt.Errorf("map %d bytes: %w", size, err)
		}
		log.Warn("blockpool: mmap backing unavailable, falling back to heap",
			zap.Int("bytes", size), zap.Error(err))
	}
	buf, err := heapAlloc(size)
	if err != nil {
		return nil, err
	}
	return &arena{buf: buf, backing: BackingHeap}, nil
}

// heapAlloc returns size bytes carved from a []uint64 so the base is 8-byte aligned.
// The recover only catches lengths beyond the runtime's slice limit; running out
// of heap is fatal, which is why newArena checks physical memory first.
func heapAlloc(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("heap allocation of %d bytes: %v", size, r)
		}
	}()
	words := make([]uint64, (size+linkWidth-1)/linkWidth)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

func (a *arena) free() error {
	if a.release == nil {
		return nil
	}
	release := a.release
	a.release = nil
	return release()
}
