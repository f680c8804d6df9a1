// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Introspection contracts shared by fixed-block pools and the control layer.

package api

// BlockPoolInspector exposes the read-only side of a fixed-block pool.
// Implementations must be safe to call from any goroutine.
type BlockPoolInspector interface {
	// Capacity returns the fixed number of blocks.
	Capacity() int

	// BlockSize returns the payload size of every block in bytes.
	BlockSize() int

	// InUsedNum returns the best-effort count of outstanding blocks.
	InUsedNum() int64

	// Stats returns an accounting snapshot.
	Stats() BlockPoolStats
}

// BlockPoolStats aggregates allocation counters of a fixed-block pool.
// Counters are read independently, so a snapshot taken under load is not atomic.
type BlockPoolStats struct {
	Capacity     int
	BlockSize    int
	Stride       int
	InUse        int64
	TotalAlloc   uint64
	TotalRecycle uint64
	Exhausted    uint64
	CASRetries   uint64
	Backing      string
}

// Debug is a registry of live probes. The control layer publishes pool gauges
// into it; each probe is evaluated on every DumpState.
type Debug interface {
	// DumpState evaluates every probe and returns the results by name.
	DumpState() map[string]any

	// RegisterProbe adds or replaces the probe called name.
	RegisterProbe(name string, fn func() any)
}
