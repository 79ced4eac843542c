package btree

import (
	"fmt"

	"blockbtree/block"
)

// superblockID is the fixed block holding the Index's superblock; block 0
// always carries it.
const superblockID int64 = 0

// Index is a disk-resident B-Tree over a block.Cache. Every node occupies
// exactly one block; the superblock tracks the root's block id, the free
// list head, and the total live key count.
type Index struct {
	cache     block.Cache
	keySize   int
	valueSize int
	blockSize int

	rootNode int64
	freeList int64
	numKeys  int64

	// strictOccupancy enables SanityCheck's >= 2/3 capacity floor; left
	// false by default since the mutation engine never enforces it during
	// Insert.
	strictOccupancy bool

	// verbose enables structural trace lines (ALLOC/FREE/SPLIT/GROW).
	verbose bool

	// closer releases the backing block.Cache, set by OpenFile/CreateFile
	// when they own the cache's lifecycle; nil when Attach was called
	// directly against a caller-owned cache.
	closer func() error
}

// Option configures an Index at construction.
type Option func(*Index)

// WithStrictOccupancy enables the >= 2/3 capacity occupancy floor in
// SanityCheck.
func WithStrictOccupancy() Option {
	return func(idx *Index) { idx.strictOccupancy = true }
}

// WithVerbose enables structural trace lines on allocation, deallocation,
// splits, and root growth.
func WithVerbose() Option {
	return func(idx *Index) { idx.verbose = true }
}

// Attach formats (if create is true) or mounts an Index over cache. A
// fresh index puts the superblock at block 0, an empty root at block 1,
// and threads every remaining block onto the free list in ascending order,
// with sentinel 0 terminating it.
func Attach(cache block.Cache, keySize, valueSize int, create bool, opts ...Option) (*Index, error) {
	idx := &Index{
		cache:     cache,
		keySize:   keySize,
		valueSize: valueSize,
		blockSize: cache.BlockSize(),
	}
	for _, opt := range opts {
		opt(idx)
	}

	if create {
		if err := idx.format(); err != nil {
			return nil, err
		}
	}

	if err := idx.readSuperblock(); err != nil {
		return nil, fmt.Errorf("btree: attach: %w", err)
	}
	return idx, nil
}

func (idx *Index) format() error {
	numBlocks := idx.cache.NumBlocks()
	if numBlocks < 3 {
		return fmt.Errorf("btree: need at least 3 blocks (superblock, root, one free block), got %d", numBlocks)
	}

	sb := newNode(superblockID, Superblock, idx.keySize, idx.valueSize, idx.blockSize)
	sb.rootNode = superblockID + 1
	sb.freeList = superblockID + 2
	sb.numKeys = 0
	idx.cache.NotifyAllocate(superblockID)
	if err := idx.cache.Write(superblockID, sb.bytes()); err != nil {
		return fmt.Errorf("btree: format superblock: %w", err)
	}

	root := newNode(superblockID+1, Root, idx.keySize, idx.valueSize, idx.blockSize)
	root.rootNode = superblockID + 1
	root.freeList = superblockID + 2
	idx.cache.NotifyAllocate(superblockID + 1)
	if err := idx.cache.Write(superblockID+1, root.bytes()); err != nil {
		return fmt.Errorf("btree: format root: %w", err)
	}

	for i := superblockID + 2; i < numBlocks; i++ {
		free := newNode(i, Unallocated, idx.keySize, idx.valueSize, idx.blockSize)
		free.rootNode = superblockID + 1
		if i+1 == numBlocks {
			free.freeList = 0
		} else {
			free.freeList = i + 1
		}
		if err := idx.cache.Write(i, free.bytes()); err != nil {
			return fmt.Errorf("btree: format free block %d: %w", i, err)
		}
	}
	return nil
}

func (idx *Index) readSuperblock() error {
	data, err := idx.cache.Read(superblockID)
	if err != nil {
		return fmt.Errorf("read superblock: %w", err)
	}
	n := decodeNode(superblockID, data)
	if n.nodeType != Superblock {
		return fmt.Errorf("block 0 is not a superblock (type %s)", n.nodeType)
	}
	idx.keySize = n.keySize
	idx.valueSize = n.valueSize
	idx.blockSize = n.blockSize
	idx.rootNode = n.rootNode
	idx.freeList = n.freeList
	idx.numKeys = int64(n.numKeys)
	return nil
}

// Detach persists the superblock.
func (idx *Index) Detach() error {
	sb := newNode(superblockID, Superblock, idx.keySize, idx.valueSize, idx.blockSize)
	sb.rootNode = idx.rootNode
	sb.freeList = idx.freeList
	sb.numKeys = int(idx.numKeys)
	if err := idx.cache.Write(superblockID, sb.bytes()); err != nil {
		return fmt.Errorf("btree: detach: %w", err)
	}
	return nil
}

func (idx *Index) readNode(id int64) (*Node, error) {
	data, err := idx.cache.Read(id)
	if err != nil {
		return nil, fmt.Errorf("read node %d: %w", id, err)
	}
	return decodeNode(id, data), nil
}

func (idx *Index) writeNode(n *Node) error {
	if err := idx.cache.Write(n.id, n.bytes()); err != nil {
		return fmt.Errorf("write node %d: %w", n.id, err)
	}
	return nil
}

// KeySize and ValueSize report the fixed widths this Index was formatted
// with.
func (idx *Index) KeySize() int { return idx.keySize }

func (idx *Index) ValueSize() int { return idx.valueSize }

// NumKeys reports the total number of keys currently stored.
func (idx *Index) NumKeys() int64 { return idx.numKeys }
