// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"runtime"
	"sync"

	"github.com/momentics/hioload-blockpool/api"
)

var _ api.Debug = (*DebugProbes)(nil)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// RegisterBlockPoolProbes exposes the live counters of p under name.*.
// Probes read p on every DumpState, so values reflect the moment of the dump.
func RegisterBlockPoolProbes(dp api.Debug, name string, p api.BlockPoolInspector) {
	dp.RegisterProbe(name+".capacity", func() any { return p.Capacity() })
	dp.RegisterProbe(name+".block_size", func() any { return p.BlockSize() })
	dp.RegisterProbe(name+".in_use", func() any { return p.InUsedNum() })
	dp.RegisterProbe(name+".exhausted", func() any { return p.Stats().Exhausted })
}

// RegisterPlatformProbes sets scheduler-level probes.
func RegisterPlatformProbes(dp api.Debug) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
}
