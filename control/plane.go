// control/plane.go
// Author: momentics <momentics@gmail.com>
//
// Plane bundles config, metrics and debug probes for the pools of one process.

package control

import (
	"sync"

	"github.com/momentics/hioload-blockpool/api"
)

// Plane is the control surface handed to applications embedding block pools.
type Plane struct {
	Config  *ConfigStore
	Metrics *MetricsRegistry
	Debug   *DebugProbes

	mu    sync.Mutex
	pools map[string]api.BlockPoolInspector
}

// NewPlane creates a plane with platform probes registered.
func NewPlane() *Plane {
	p := &Plane{
		Config:  NewConfigStore(),
		Metrics: NewMetricsRegistry(),
		Debug:   NewDebugProbes(),
		pools:   make(map[string]api.BlockPoolInspector),
	}
	RegisterPlatformProbes(p.Debug)
	return p
}

// Watch registers probes for pool under name and includes it in Refresh.
func (p *Plane) Watch(name string, pool api.BlockPoolInspector) {
	p.mu.Lock()
	p.pools[name] = pool
	p.mu.Unlock()
	RegisterBlockPoolProbes(p.Debug, name, pool)
}

// Refresh publishes the current stats of every watched pool.
func (p *Plane) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, pool := range p.pools {
		p.Metrics.RecordBlockPool(name, pool.Stats())
	}
}

// Stats merges metrics with debug probe output under a "debug." prefix.
func (p *Plane) Stats() map[string]any {
	stats := p.Metrics.GetSnapshot()
	for k, v := range p.Debug.DumpState() {
		stats["debug."+k] = v
	}
	return stats
}
