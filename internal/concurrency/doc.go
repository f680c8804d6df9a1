// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free handoff primitives used alongside the block pool: producers that
// allocate blocks pass them to consumers that recycle them.
package concurrency
