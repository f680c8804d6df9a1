package concurrency

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMPMCQueue_CapacityRounding(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{"zero", 0, 2},
		{"one", 1, 2},
		{"two", 2, 2},
		{"three", 3, 4},
		{"power of two", 1024, 1024},
		{"just above", 1025, 2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMPMCQueue[int](tt.capacity).Cap())
		})
	}
}

func TestMPMCQueue_FIFOAndBounds(t *testing.T) {
	q := NewMPMCQueue[int](4)

	_, ok := q.TryDequeue()
	assert.False(t, ok, "empty queue must not yield")

	for i := 1; i <= 4; i++ {
		require.True(t, q.TryEnqueue(i))
	}
	assert.False(t, q.TryEnqueue(5), "full queue must reject")

	for i := 1; i <= 4; i++ {
		v, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok = q.TryDequeue()
	assert.False(t, ok)

	// wrap around
	for round := 0; round < 10; round++ {
		require.True(t, q.TryEnqueue(round))
		v, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, round, v)
	}
}

func TestMPMCQueue_Concurrent(t *testing.T) {
	q := NewMPMCQueue[int](1024)
	const (
		producers        = 8
		consumers        = 8
		itemsPerProducer = 10000
	)
	total := int64(producers * itemsPerProducer)

	var sentSum, receivedSum, receivedCount atomic.Int64

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		pid := p
		g.Go(func() error {
			for i := 0; i < itemsPerProducer; i++ {
				val := pid*itemsPerProducer + i + 1
				for !q.TryEnqueue(val) {
					runtime.Gosched()
				}
				sentSum.Add(int64(val))
			}
			return nil
		})
	}
	for c := 0; c < consumers; c++ {
		g.Go(func() error {
			for receivedCount.Load() < total {
				if v, ok := q.TryDequeue(); ok {
					receivedSum.Add(int64(v))
					receivedCount.Add(1)
					continue
				}
				runtime.Gosched()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, total, receivedCount.Load())
	assert.Equal(t, sentSum.Load(), receivedSum.Load(), "checksum mismatch")
}
