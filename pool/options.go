// File: pool/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Backing selects where the arena of a FixedBlockPool lives.
type Backing uint8

const (
	// BackingHeap allocates the arena on the Go heap.
	BackingHeap Backing = iota
	// BackingMmap maps an anonymous private region outside the Go heap.
	// Platforms without support fall back to BackingHeap.
	BackingMmap
)

func (b Backing) String() string {
	switch b {
	case BackingHeap:
		return "heap"
	case BackingMmap:
		return "mmap"
	default:
		return fmt.Sprintf("backing(%d)", uint8(b))
	}
}

// ParseBacking converts "heap" or "mmap" into a Backing.
func ParseBacking(s string) (Backing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "heap":
		return BackingHeap, nil
	case "mmap":
		return BackingMmap, nil
	}
	return BackingHeap, fmt.Errorf("unknown backing %q", s)
}

// Option configures a FixedBlockPool at construction time.
type Option func(*options)

type options struct {
	// logger receives construction, fallback and debug-check events.
	// nil means zap.L() at construction time.
	logger *zap.Logger

	// backing selects the arena allocator.
	backing Backing

	// memoryLimit caps the arena size in bytes. Zero disables the cap.
	memoryLimit int

	// debugChecks validates Recycle preconditions and panics on misuse.
	debugChecks bool
}

var defaultOptions = options{
	backing: BackingHeap,
}

// WithLogger sets the logger used by the pool.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithBacking selects the arena allocator.
func WithBacking(b Backing) Option {
	return func(o *options) {
		o.backing = b
	}
}

// WithMemoryLimit refuses arenas larger than limit bytes with ErrOutOfMemory.
func WithMemoryLimit(limit int) Option {
	return func(o *options) {
		o.memoryLimit = limit
	}
}

// WithDebugChecks enables ownership and double-recycle detection in Recycle.
func WithDebugChecks(enabled bool) Option {
	return func(o *options) {
		o.debugChecks = enabled
	}
}
