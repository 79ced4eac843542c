package btree

import "encoding/binary"

// Every block carries the same fixed little-endian packed header, whatever
// its node kind: nodetype, keysize, valuesize, blocksize, rootnode,
// freelist, numkeys, in that order. The on-block format is little-endian
// only; it is not portable to architectures that disagree.
//
// pointerWidth is the width of rootnode, freelist, and every interior
// child pointer. Keeping all three the same 8-byte width is what lets
// addKV's stride arithmetic (keysize+pointerWidth) work uniformly.
const (
	pointerWidth = 8

	offNodeType  = 0
	offKeySize   = 4
	offValueSize = 8
	offBlockSize = 12
	offRootNode  = 16
	offFreeList  = 24
	offNumKeys   = 32

	HeaderSize = 36
)

// NodeType identifies the kind of a block.
type NodeType uint32

const (
	Superblock NodeType = iota
	Root
	Interior
	Leaf
	Unallocated
)

func (t NodeType) String() string {
	switch t {
	case Superblock:
		return "SUPERBLOCK"
	case Root:
		return "ROOT"
	case Interior:
		return "INTERIOR"
	case Leaf:
		return "LEAF"
	case Unallocated:
		return "UNALLOCATED"
	default:
		return "UNKNOWN"
	}
}

// header is the in-memory decoding of a block's fixed prefix.
type header struct {
	nodeType  NodeType
	keySize   uint32
	valueSize uint32
	blockSize uint32
	rootNode  int64
	freeList  int64
	numKeys   uint32
}

func decodeHeader(block []byte) header {
	return header{
		nodeType:  NodeType(binary.LittleEndian.Uint32(block[offNodeType:])),
		keySize:   binary.LittleEndian.Uint32(block[offKeySize:]),
		valueSize: binary.LittleEndian.Uint32(block[offValueSize:]),
		blockSize: binary.LittleEndian.Uint32(block[offBlockSize:]),
		rootNode:  int64(binary.LittleEndian.Uint64(block[offRootNode:])),
		freeList:  int64(binary.LittleEndian.Uint64(block[offFreeList:])),
		numKeys:   binary.LittleEndian.Uint32(block[offNumKeys:]),
	}
}

func (h header) encode(block []byte) {
	binary.LittleEndian.PutUint32(block[offNodeType:], uint32(h.nodeType))
	binary.LittleEndian.PutUint32(block[offKeySize:], h.keySize)
	binary.LittleEndian.PutUint32(block[offValueSize:], h.valueSize)
	binary.LittleEndian.PutUint32(block[offBlockSize:], h.blockSize)
	binary.LittleEndian.PutUint64(block[offRootNode:], uint64(h.rootNode))
	binary.LittleEndian.PutUint64(block[offFreeList:], uint64(h.freeList))
	binary.LittleEndian.PutUint32(block[offNumKeys:], h.numKeys)
}
