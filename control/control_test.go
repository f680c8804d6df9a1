package control

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-blockpool/fake"
	"github.com/momentics/hioload-blockpool/pool"
)

func TestMetricsRegistry_Basic(t *testing.T) {
	reg := NewMetricsRegistry()
	assert.True(t, reg.Updated().IsZero())

	reg.Set("foo.count", int64(42))
	reg.Set("bar.status", "ok")

	metrics := reg.GetSnapshot()
	assert.Equal(t, int64(42), metrics["foo.count"])
	assert.Equal(t, "ok", metrics["bar.status"])
	assert.False(t, reg.Updated().IsZero())

	metrics["foo.count"] = 0
	assert.Equal(t, int64(42), reg.GetSnapshot()["foo.count"], "snapshot is a copy")
}

func TestDebugProbes_BlockPool(t *testing.T) {
	fp := fake.NewBlockPool(4, 64)
	dp := NewDebugProbes()
	RegisterBlockPoolProbes(dp, "rx", fp)

	_, ok := fp.Alloc()
	require.True(t, ok)
	_, ok = fp.Alloc()
	require.True(t, ok)

	state := dp.DumpState()
	assert.Equal(t, 4, state["rx.capacity"])
	assert.Equal(t, 64, state["rx.block_size"])
	assert.Equal(t, int64(2), state["rx.in_use"])
	assert.Equal(t, uint64(0), state["rx.exhausted"])
}

// mapDebug is a minimal api.Debug outside the control package.
type mapDebug map[string]func() any

func (m mapDebug) RegisterProbe(name string, fn func() any) { m[name] = fn }

func (m mapDebug) DumpState() map[string]any {
	out := make(map[string]any, len(m))
	for k, fn := range m {
		out[k] = fn()
	}
	return out
}

func TestRegisterBlockPoolProbes_AnyDebugRegistry(t *testing.T) {
	p, err := pool.New(3, 8)
	require.NoError(t, err)
	dbg := mapDebug{}
	RegisterBlockPoolProbes(dbg, "io", p)
	RegisterPlatformProbes(dbg)

	b, ok := p.Alloc()
	require.True(t, ok)
	state := dbg.DumpState()
	assert.Equal(t, 3, state["io.capacity"])
	assert.Equal(t, int64(1), state["io.in_use"])
	assert.Equal(t, runtime.GOMAXPROCS(0), state["platform.gomaxprocs"])

	p.Recycle(b)
	require.NoError(t, p.Close())
}

func TestConfigStore_FeedsPoolConfig(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{
		pool.KeyCapacity:  8,
		pool.KeyBlockSize: 16,
	})
	cs.SetConfig(map[string]any{pool.KeyDebugChecks: true})

	v, ok := cs.Get(pool.KeyCapacity)
	require.True(t, ok)
	assert.Equal(t, 8, v)

	cfg, err := pool.ConfigFromMap(cs.GetSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Capacity)
	assert.Equal(t, 16, cfg.BlockSize)
	assert.True(t, cfg.DebugChecks)
}

func TestPlane_RefreshAndStats(t *testing.T) {
	plane := NewPlane()
	p, err := pool.New(8, 16)
	require.NoError(t, err)
	plane.Watch("tx", p)

	b, ok := p.Alloc()
	require.True(t, ok)
	plane.Refresh()

	stats := plane.Stats()
	assert.Equal(t, int64(1), stats["tx.in_use"])
	assert.Equal(t, uint64(1), stats["tx.total_alloc"])
	assert.Equal(t, 24, stats["tx.stride"])
	assert.Equal(t, "heap", stats["tx.backing"])
	assert.Equal(t, int64(1), stats["debug.tx.in_use"])
	assert.Equal(t, runtime.NumCPU(), stats["debug.platform.cpus"])

	p.Recycle(b)
	assert.Equal(t, int64(0), plane.Stats()["debug.tx.in_use"], "probes are live")
	assert.Equal(t, int64(1), plane.Stats()["tx.in_use"], "metrics change only on Refresh")
	require.NoError(t, p.Close())
}
