package btree

import (
	"fmt"
	"io"
	"os"

	"blockbtree/block"
)

// CreateFile formats a fresh index in a file-backed cache at path. The
// Index owns the cache: Close releases both.
func CreateFile(path string, keySize, valueSize, blockSize int, numBlocks int64, opts ...Option) (*Index, error) {
	cache, err := block.OpenFileCache(path, numBlocks, blockSize)
	if err != nil {
		return nil, err
	}
	idx, err := Attach(cache, keySize, valueSize, true, opts...)
	if err != nil {
		cache.Close()
		return nil, err
	}
	idx.closer = cache.Close
	return idx, nil
}

// OpenFile mounts an existing index file, recovering the key, value, and
// block geometry from the superblock header at the start of the file so
// callers do not have to remember the widths the index was created with.
func OpenFile(path string, opts ...Option) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("btree: open %s: %w", path, err)
	}
	raw := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, raw); err != nil {
		f.Close()
		return nil, fmt.Errorf("btree: open %s: read superblock header: %w", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("btree: open %s: %w", path, err)
	}
	f.Close()

	h := decodeHeader(raw)
	if h.nodeType != Superblock {
		return nil, fmt.Errorf("btree: open %s: block 0 is not a superblock (type %s)", path, h.nodeType)
	}
	if h.blockSize == 0 {
		return nil, fmt.Errorf("btree: open %s: superblock declares zero block size", path)
	}
	numBlocks := stat.Size() / int64(h.blockSize)

	cache, err := block.OpenFileCache(path, numBlocks, int(h.blockSize))
	if err != nil {
		return nil, err
	}
	idx, err := Attach(cache, int(h.keySize), int(h.valueSize), false, opts...)
	if err != nil {
		cache.Close()
		return nil, err
	}
	idx.closer = cache.Close
	return idx, nil
}

// Close flushes the superblock and, when this Index owns its backing
// cache (CreateFile/OpenFile), releases it.
func (idx *Index) Close() error {
	if err := idx.Detach(); err != nil {
		if idx.closer != nil {
			idx.closer()
		}
		return err
	}
	if idx.closer != nil {
		return idx.closer()
	}
	return nil
}
