package btree

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"blockbtree/block"
)

// Stats summarizes an Index's block usage and, when the underlying
// block.Cache exposes them, its hot-cache hit/miss counters.
type Stats struct {
	TotalBlocks int64
	FreeBlocks  int64
	UsedBlocks  int64
	NumKeys     int64

	CacheHits      uint64
	CacheMisses    uint64
	CacheCostAdded uint64
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"blocks: %s total, %s used, %s free | keys: %s | cache: %s hits, %s misses, %s cached",
		humanize.Comma(s.TotalBlocks),
		humanize.Comma(s.UsedBlocks),
		humanize.Comma(s.FreeBlocks),
		humanize.Comma(s.NumKeys),
		humanize.Comma(int64(s.CacheHits)),
		humanize.Comma(int64(s.CacheMisses)),
		humanize.Bytes(s.CacheCostAdded),
	)
}

// cacheStatter is implemented by the concrete block.Cache adapters that
// track hot-cache hit/miss counters; Cache itself does not require it, so
// Stats degrades gracefully against any other implementation.
type cacheStatter interface {
	Stats() block.Stats
}

// Stats reports current block usage by walking the free list once, plus
// cache counters when the backing block.Cache supports them.
func (idx *Index) Stats() (Stats, error) {
	total := idx.cache.NumBlocks()
	free := int64(0)

	cur := idx.freeList
	seen := make(map[int64]bool)
	for cur != 0 {
		if seen[cur] {
			return Stats{}, fmt.Errorf("%w: free list cycles back to block %d", ErrInsane, cur)
		}
		seen[cur] = true
		n, err := idx.readNode(cur)
		if err != nil {
			return Stats{}, err
		}
		if n.nodeType != Unallocated {
			return Stats{}, fmt.Errorf("%w: free list block %d has type %s", ErrInsane, cur, n.nodeType)
		}
		free++
		cur = n.freeList
	}

	s := Stats{
		TotalBlocks: total,
		FreeBlocks:  free,
		UsedBlocks:  total - free,
		NumKeys:     idx.numKeys,
	}
	if statter, ok := idx.cache.(cacheStatter); ok {
		cs := statter.Stats()
		s.CacheHits = cs.Hits
		s.CacheMisses = cs.Misses
		s.CacheCostAdded = cs.CostAdded
	}
	return s, nil
}
