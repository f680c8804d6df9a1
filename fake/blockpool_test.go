package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-blockpool/api"
)

func TestBlockPool_ReportsMisuse(t *testing.T) {
	f := NewBlockPool(2, 16)
	idx, ok := f.Alloc()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	require.NoError(t, f.Recycle(idx))
	assert.ErrorIs(t, f.Recycle(idx), api.ErrDoubleRecycle)
	assert.ErrorIs(t, f.Recycle(5), api.ErrForeignBlock)
	assert.Zero(t, f.InUsedNum())
}
