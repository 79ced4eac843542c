// Package block is the buffer-cache façade the B-Tree core runs against.
//
// The core never reads or writes a byte directly: every typed-node access
// goes through a Cache, which knows nothing about node layout. It only
// moves whole blocks and fires advisory notifications when a block
// transitions to or from the allocator's free list.
package block

import (
	"errors"
	"fmt"
)

// Cache mediates all block access for the B-Tree core, which is built
// entirely in terms of this interface so it can run unmodified against an
// in-memory backing store in tests and a file-backed one in production.
type Cache interface {
	// BlockSize returns the fixed number of bytes per block.
	BlockSize() int
	// NumBlocks returns the total addressable block count.
	NumBlocks() int64
	// Read returns a copy of block id's contents. The returned slice has
	// length BlockSize() and is safe for the caller to mutate.
	Read(id int64) ([]byte, error)
	// Write persists data as the full contents of block id. len(data)
	// must equal BlockSize().
	Write(id int64, data []byte) error
	// NotifyAllocate is an advisory hook: block id was just handed out by
	// the allocator. The cache does not need to act on it.
	NotifyAllocate(id int64)
	// NotifyFree is an advisory hook: block id was just returned to the
	// free list.
	NotifyFree(id int64)
}

// ErrOutOfRange is returned when a block id falls outside [0, NumBlocks()).
var ErrOutOfRange = errors.New("block: id out of range")

func checkRange(id, numBlocks int64) error {
	if id < 0 || id >= numBlocks {
		return fmt.Errorf("%w: %d (have %d blocks)", ErrOutOfRange, id, numBlocks)
	}
	return nil
}
