package btree

import "fmt"

// allocate pops the head of the free list and returns it as a block id
// ready to be formatted into a node of the caller's choosing. The free
// list's head is superblock.freelist, each unallocated block carries the
// next free id in its own freelist field, and 0 is the sentinel for "list
// empty". The returned block is still typed Unallocated; the caller must
// write a real node before anything else reads it.
func (idx *Index) allocate() (int64, error) {
	n := idx.freeList
	if n == 0 {
		return 0, ErrNoSpace
	}

	free, err := idx.readNode(n)
	if err != nil {
		return 0, fmt.Errorf("btree: allocate: %w", err)
	}
	if free.nodeType != Unallocated {
		return 0, fmt.Errorf("%w: allocate: block %d on free list has type %s", ErrInsane, n, free.nodeType)
	}

	idx.freeList = free.freeList
	if err := idx.Detach(); err != nil {
		return 0, fmt.Errorf("btree: allocate: %w", err)
	}
	idx.cache.NotifyAllocate(n)
	if idx.verbose {
		fmt.Printf("[BTree] ALLOC block=%d freelist=%d\n", n, idx.freeList)
	}
	return n, nil
}

// deallocate returns block id to the head of the free list.
func (idx *Index) deallocate(id int64) error {
	n, err := idx.readNode(id)
	if err != nil {
		return fmt.Errorf("btree: deallocate: %w", err)
	}
	if n.nodeType == Unallocated {
		return fmt.Errorf("%w: deallocate: block %d is already free", ErrInsane, id)
	}

	free := newNode(id, Unallocated, idx.keySize, idx.valueSize, idx.blockSize)
	free.rootNode = idx.rootNode
	free.freeList = idx.freeList
	if err := idx.writeNode(free); err != nil {
		return fmt.Errorf("btree: deallocate: %w", err)
	}

	idx.freeList = id
	if err := idx.Detach(); err != nil {
		return fmt.Errorf("btree: deallocate: %w", err)
	}
	idx.cache.NotifyFree(id)
	if idx.verbose {
		fmt.Printf("[BTree] FREE block=%d\n", id)
	}
	return nil
}
