// Package pool
// Author: momentics <momentics@gmail.com>
//
// Lock-free fixed-block memory pool for hioload-blockpool.
//
// FixedBlockPool slices one arena into equal slots at construction and never
// grows, shrinks or defragments afterwards. Alloc and Recycle are a pop and a
// push on a Treiber stack of slot references; neither blocks, and under
// contention they only retry a CompareAndSwap. Exhaustion is reported as
// (Block{}, false) so the caller can pick a backpressure policy, for example
// parking work in a Backlog.
//
// InUsedNum is kept with its own atomic add rather than inside the CAS loop;
// it converges once mutations settle and is meant for diagnostics only.
//
// See fixed_block_pool.go, batch.go, backlog.go for implementation details.
package pool
