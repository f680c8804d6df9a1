// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration and debug introspection for block pools.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads feeding pool.ConfigFromMap
//   - Metrics publication of pool accounting
//   - Debug probes reading live pool counters
package control
