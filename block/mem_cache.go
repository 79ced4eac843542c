package block

import "fmt"

// MemCache is an in-memory Cache backed by a fixed-size array of block
// buffers. The block count is fixed at construction, so the backing store
// is a preallocated [][]byte rather than a growable map keyed by a page
// counter.
type MemCache struct {
	blockSize int
	blocks    [][]byte
	hot       *hotCache

	// Verbose enables hit/miss trace lines on Read.
	Verbose bool
}

// NewMemCache allocates numBlocks zeroed blocks of blockSize bytes each.
func NewMemCache(numBlocks int64, blockSize int) (*MemCache, error) {
	if numBlocks <= 0 {
		return nil, fmt.Errorf("block: numBlocks must be positive, got %d", numBlocks)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("block: blockSize must be positive, got %d", blockSize)
	}
	hot, err := newHotCache(numBlocks, blockSize)
	if err != nil {
		return nil, fmt.Errorf("block: new hot cache: %w", err)
	}
	blocks := make([][]byte, numBlocks)
	for i := range blocks {
		blocks[i] = make([]byte, blockSize)
	}
	return &MemCache{blockSize: blockSize, blocks: blocks, hot: hot}, nil
}

func (m *MemCache) BlockSize() int { return m.blockSize }

func (m *MemCache) NumBlocks() int64 { return int64(len(m.blocks)) }

func (m *MemCache) Stats() Stats { return m.hot.stats() }

func (m *MemCache) Close() { m.hot.close() }

func (m *MemCache) Read(id int64) ([]byte, error) {
	if err := checkRange(id, int64(len(m.blocks))); err != nil {
		return nil, err
	}
	if data, ok := m.hot.get(id); ok {
		if m.Verbose {
			fmt.Printf("[BlockCache] HIT block=%d\n", id)
		}
		return data, nil
	}
	if m.Verbose {
		fmt.Printf("[BlockCache] MISS block=%d\n", id)
	}
	out := make([]byte, m.blockSize)
	copy(out, m.blocks[id])
	m.hot.set(id, out)
	return out, nil
}

func (m *MemCache) Write(id int64, data []byte) error {
	if err := checkRange(id, int64(len(m.blocks))); err != nil {
		return err
	}
	if len(data) != m.blockSize {
		return fmt.Errorf("block: write to %d: data length %d != block size %d", id, len(data), m.blockSize)
	}
	cp := make([]byte, m.blockSize)
	copy(cp, data)
	m.blocks[id] = cp
	m.hot.set(id, cp)
	return nil
}

func (m *MemCache) NotifyAllocate(id int64) { m.hot.del(id) }
func (m *MemCache) NotifyFree(id int64)     { m.hot.del(id) }
