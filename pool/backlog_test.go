package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Backlog_Drains_In_FIFO_Order_Until_Exhausted(t *testing.T) {
	p := newTestPool(t, 2, 16)
	bl := NewBacklog[string]()
	for _, s := range []string{"a", "b", "c"} {
		bl.Defer(s)
	}
	assert.Equal(t, 3, bl.Len())

	var got []string
	var held []Block
	n := bl.Drain(p, func(item string, blk Block) {
		copy(blk.Bytes(), item)
		got = append(got, item)
		held = append(held, blk)
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, bl.Len(), "c waits for a block")

	p.Recycle(held[0])
	n = bl.Drain(p, func(item string, blk Block) {
		got = append(got, item)
		held[0] = blk
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, bl.Len())

	assert.Zero(t, bl.Drain(p, func(string, Block) { t.Fatal("empty backlog must not dispatch") }))
	for _, b := range held {
		p.Recycle(b)
	}
	assert.Zero(t, p.InUsedNum())
}

func Test_Backlog_Keeps_Nil_Interface_Items(t *testing.T) {
	p := newTestPool(t, 4, 16)
	bl := NewBacklog[error]()
	boom := errors.New("boom")
	bl.Defer(nil)
	bl.Defer(boom)

	var got []error
	var held []Block
	n := bl.Drain(p, func(item error, blk Block) {
		got = append(got, item)
		held = append(held, blk)
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []error{nil, boom}, got)
	for _, b := range held {
		p.Recycle(b)
	}
}
