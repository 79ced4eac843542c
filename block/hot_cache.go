package block

import (
	"github.com/dgraph-io/ristretto/v2"
)

// hotCache is a write-through accelerator sitting in front of a backing
// store. It never becomes the source of truth: every Write goes to the
// backing store synchronously first, and a miss always falls through to
// it too. Reads that hit are free of the backing store's I/O cost.
//
// Ristretto's W-TinyLFU admission policy fits the skewed re-access pattern
// a B-Tree produces: root and upper-interior blocks are read far more often
// than leaves.
type hotCache struct {
	c *ristretto.Cache[int64, []byte]
}

func newHotCache(numBlocks int64, blockSize int) (*hotCache, error) {
	// NumCounters is sized generously relative to the block count so the
	// frequency sketch doesn't thrash on a small index; MaxCost bounds
	// total cached bytes, not entry count, since cost is blockSize.
	counters := numBlocks * 10
	if counters < 1000 {
		counters = 1000
	}
	maxCost := int64(blockSize) * numBlocks
	if maxCost <= 0 || maxCost > 64<<20 {
		maxCost = 64 << 20 // cap the hot set at 64MiB regardless of index size
	}

	c, err := ristretto.NewCache(&ristretto.Config[int64, []byte]{
		NumCounters: counters,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &hotCache{c: c}, nil
}

func (h *hotCache) get(id int64) ([]byte, bool) {
	v, ok := h.c.Get(id)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// set caches a copy of data for id. Ristretto applies a Set of a key it
// does not yet hold asynchronously, and drops a second such Set that arrives
// before the first is applied; waiting for the buffer to drain keeps a later
// get from returning an older image of the block.
func (h *hotCache) set(id int64, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	h.c.Set(id, cp, int64(len(cp)))
	h.c.Wait()
}

func (h *hotCache) del(id int64) {
	h.c.Del(id)
}

func (h *hotCache) close() {
	h.c.Close()
}

// Stats reports the hot cache's hit/miss counters and total bytes admitted.
type Stats struct {
	Hits      uint64
	Misses    uint64
	CostAdded uint64
}

func (h *hotCache) stats() Stats {
	m := h.c.Metrics
	if m == nil {
		return Stats{}
	}
	return Stats{
		Hits:      m.Hits(),
		Misses:    m.Misses(),
		CostAdded: m.CostAdded(),
	}
}
