// File: pool/batch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BlockBatch amortizes per-call overhead when a consumer needs several blocks
// at once. A batch is NOT goroutine-safe; AllocBatch and RecycleBatch are.

package pool

// BlockBatch is a minimal reusable slice of Blocks.
type BlockBatch struct {
	blocks []Block
}

// NewBlockBatch creates an empty batch with room for capacity blocks.
func NewBlockBatch(capacity int) *BlockBatch {
	return &BlockBatch{blocks: make([]Block, 0, capacity)}
}

// Len returns the number of blocks held.
func (b *BlockBatch) Len() int { return len(b.blocks) }

// Get returns the block at idx.
func (b *BlockBatch) Get(idx int) Block { return b.blocks[idx] }

// Blocks returns the underlying slice; it is invalidated by Reset.
func (b *BlockBatch) Blocks() []Block { return b.blocks }

// Reset drops all blocks but keeps the storage.
func (b *BlockBatch) Reset() {
	clear(b.blocks)
	b.blocks = b.blocks[:0]
}

// AllocBatch appends up to n blocks to dst and returns how many it got.
// A short count means the pool ran dry.
func (p *FixedBlockPool) AllocBatch(dst *BlockBatch, n int) int {
	got := 0
	for ; got < n; got++ {
		blk, ok := p.Alloc()
		if !ok {
			break
		}
		dst.blocks = append(dst.blocks, blk)
	}
	return got
}

// RecycleBatch recycles every block in src and resets it.
func (p *FixedBlockPool) RecycleBatch(src *BlockBatch) {
	for _, blk := range src.blocks {
		p.Recycle(blk)
	}
	src.Reset()
}
