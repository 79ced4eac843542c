package block

import (
	"fmt"
	"os"
)

// FileCache is a single-file, fixed-block-count Cache. Block id i lives at
// byte offset i*blockSize; there is no indirection layer because the index
// owns exactly one file whose block count is fixed when it is opened.
type FileCache struct {
	file      *os.File
	blockSize int
	numBlocks int64
	hot       *hotCache

	// Verbose enables hit/miss trace lines on Read.
	Verbose bool
}

// OpenFileCache opens (creating if necessary) path as the backing file for
// an index of numBlocks blocks of blockSize bytes each. If the file is
// shorter than numBlocks*blockSize, it is zero-extended; pre-existing
// content beyond that is left untouched but inaccessible through this
// Cache.
func OpenFileCache(path string, numBlocks int64, blockSize int) (*FileCache, error) {
	if numBlocks <= 0 {
		return nil, fmt.Errorf("block: numBlocks must be positive, got %d", numBlocks)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("block: blockSize must be positive, got %d", blockSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("block: open %s: %w", path, err)
	}

	want := numBlocks * int64(blockSize)
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("block: stat %s: %w", path, err)
	}
	if stat.Size() < want {
		if err := f.Truncate(want); err != nil {
			f.Close()
			return nil, fmt.Errorf("block: extend %s to %d bytes: %w", path, want, err)
		}
	}

	hot, err := newHotCache(numBlocks, blockSize)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("block: new hot cache: %w", err)
	}

	return &FileCache{file: f, blockSize: blockSize, numBlocks: numBlocks, hot: hot}, nil
}

func (c *FileCache) BlockSize() int { return c.blockSize }

func (c *FileCache) NumBlocks() int64 { return c.numBlocks }

func (c *FileCache) Stats() Stats { return c.hot.stats() }

// Close flushes and releases the backing file descriptor and the hot
// cache. It does not flush any in-flight writes, since every Write in this
// adapter is already synchronous.
func (c *FileCache) Close() error {
	c.hot.close()
	if err := c.file.Sync(); err != nil {
		c.file.Close()
		return fmt.Errorf("block: sync before close: %w", err)
	}
	return c.file.Close()
}

func (c *FileCache) Read(id int64) ([]byte, error) {
	if err := checkRange(id, c.numBlocks); err != nil {
		return nil, err
	}
	if data, ok := c.hot.get(id); ok {
		if c.Verbose {
			fmt.Printf("[BlockCache] HIT block=%d\n", id)
		}
		return data, nil
	}
	if c.Verbose {
		fmt.Printf("[BlockCache] MISS block=%d\n", id)
	}

	buf := make([]byte, c.blockSize)
	offset := id * int64(c.blockSize)
	n, err := c.file.ReadAt(buf, offset)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("block: read block %d: %w", id, err)
	}
	for i := n; i < c.blockSize; i++ {
		buf[i] = 0
	}
	c.hot.set(id, buf)
	return buf, nil
}

func (c *FileCache) Write(id int64, data []byte) error {
	if err := checkRange(id, c.numBlocks); err != nil {
		return err
	}
	if len(data) != c.blockSize {
		return fmt.Errorf("block: write to %d: data length %d != block size %d", id, len(data), c.blockSize)
	}
	offset := id * int64(c.blockSize)
	if _, err := c.file.WriteAt(data, offset); err != nil {
		return fmt.Errorf("block: write block %d: %w", id, err)
	}
	c.hot.set(id, data)
	return nil
}

func (c *FileCache) NotifyAllocate(id int64) { c.hot.del(id) }
func (c *FileCache) NotifyFree(id int64)     { c.hot.del(id) }
