// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for pool monitoring.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-blockpool/api"
)

// MetricsRegistry holds the latest published metrics.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// RecordBlockPool publishes s under name.* keys in one update.
func (mr *MetricsRegistry) RecordBlockPool(name string, s api.BlockPoolStats) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.metrics[name+".capacity"] = s.Capacity
	mr.metrics[name+".block_size"] = s.BlockSize
	mr.metrics[name+".stride"] = s.Stride
	mr.metrics[name+".in_use"] = s.InUse
	mr.metrics[name+".total_alloc"] = s.TotalAlloc
	mr.metrics[name+".total_recycle"] = s.TotalRecycle
	mr.metrics[name+".exhausted"] = s.Exhausted
	mr.metrics[name+".cas_retries"] = s.CASRetries
	mr.metrics[name+".backing"] = s.Backing
	mr.updated = time.Now()
}

// Updated returns the time of the last write.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// GetSnapshot returns the latest metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics))
	for k, v := range mr.metrics {
		out[k] = v
	}
	return out
}
