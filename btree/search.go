package btree

import (
	"bytes"
	"fmt"
)

type searchOp int

const (
	opLookup searchOp = iota
	opUpdate
)

// Lookup returns the value stored for key, or ErrNotFound.
func (idx *Index) Lookup(key []byte) ([]byte, error) {
	if len(key) != idx.keySize {
		return nil, fmt.Errorf("btree: lookup: key length %d != %d", len(key), idx.keySize)
	}
	return idx.lookupOrUpdate(idx.rootNode, opLookup, key, nil)
}

// Update overwrites the value stored for an existing key, or returns
// ErrNotFound. It does not create the key; use Insert for that.
func (idx *Index) Update(key, value []byte) error {
	if len(key) != idx.keySize {
		return fmt.Errorf("btree: update: key length %d != %d", len(key), idx.keySize)
	}
	if len(value) != idx.valueSize {
		return fmt.Errorf("btree: update: value length %d != %d", len(value), idx.valueSize)
	}
	_, err := idx.lookupOrUpdate(idx.rootNode, opUpdate, key, value)
	return err
}

// lookupOrUpdate descends from node toward the leaf that would hold key,
// combining the read-only and in-place-overwrite paths into one traversal.
// At each interior level it scans keys left to right for the first key
// strictly greater than the target and recurses on the pointer immediately
// to that key's left (a child pointer always precedes the separator key
// that bounds its right edge); if no key is greater, it recurses on the
// rightmost pointer.
func (idx *Index) lookupOrUpdate(nodeID int64, op searchOp, key, value []byte) ([]byte, error) {
	n, err := idx.readNode(nodeID)
	if err != nil {
		return nil, err
	}

	switch n.nodeType {
	case Root, Interior:
		for i := 0; i < n.numKeys; i++ {
			testKey, err := n.getKey(i)
			if err != nil {
				return nil, err
			}
			if bytes.Compare(key, testKey) < 0 {
				ptr, err := n.getPtr(i)
				if err != nil {
					return nil, err
				}
				return idx.lookupOrUpdate(ptr, op, key, value)
			}
		}
		if n.numKeys > 0 {
			ptr, err := n.getPtr(n.numKeys)
			if err != nil {
				return nil, err
			}
			return idx.lookupOrUpdate(ptr, op, key, value)
		}
		return nil, ErrNotFound

	case Leaf:
		for i := 0; i < n.numKeys; i++ {
			testKey, err := n.getKey(i)
			if err != nil {
				return nil, err
			}
			if bytes.Equal(key, testKey) {
				if op == opLookup {
					return n.getValue(i)
				}
				if err := n.setValue(i, value); err != nil {
					return nil, err
				}
				return nil, idx.writeNode(n)
			}
		}
		return nil, ErrNotFound

	default:
		return nil, fmt.Errorf("%w: unexpected node type %s at block %d", ErrInsane, n.nodeType, nodeID)
	}
}
