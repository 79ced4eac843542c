package btree

import "fmt"

// split divides a full node in two, allocating a fresh block for the new
// right-hand sibling and returning it along with the key that the parent
// must insert as their separator. Slot movement is a single bulk copy over
// the nodes' raw backing arrays; the stride arithmetic lives in node.go.
func (idx *Index) split(node *Node) (*Node, []byte, error) {
	if node.numKeys != node.capacity() {
		return nil, nil, fmt.Errorf("btree: split called on non-full node %d (%d/%d keys)", node.id, node.numKeys, node.capacity())
	}

	newID, err := idx.allocate()
	if err != nil {
		return nil, nil, err
	}

	if idx.verbose {
		fmt.Printf("[BTree] SPLIT block=%d new=%d\n", node.id, newID)
	}
	if node.isInterior() {
		return idx.splitInterior(node, newID)
	}
	return idx.splitLeaf(node, newID)
}

// splitLeaf keeps nL = (numkeys+2)/2 keys on the left and moves the rest
// right. The split key, the last key of the left half, is duplicated into
// the parent while also staying in the left leaf.
func (idx *Index) splitLeaf(node *Node, newID int64) (*Node, []byte, error) {
	numKeys := node.numKeys
	nL := (numKeys + 2) / 2
	nR := numKeys - nL

	right := newNode(newID, Leaf, idx.keySize, idx.valueSize, idx.blockSize)
	right.rootNode = node.rootNode

	stride := idx.keySize + idx.valueSize
	srcOff := node.resolveSlot(nL)
	dstOff := right.resolveSlot(0)
	length := nR * stride
	copy(right.data[dstOff:dstOff+length], node.data[srcOff:srcOff+length])

	splitKey, err := node.getKey(nL - 1)
	if err != nil {
		return nil, nil, err
	}

	node.numKeys = nL
	right.numKeys = nR

	if err := idx.writeNode(node); err != nil {
		return nil, nil, err
	}
	if err := idx.writeNode(right); err != nil {
		return nil, nil, err
	}
	return right, splitKey, nil
}

// splitInterior keeps nL = numkeys/2 keys (and their left pointers) on the
// left, promotes the key at index nL to the parent without it surviving in
// either child, and moves the remaining nR keys plus all nR+1 trailing
// pointers right.
func (idx *Index) splitInterior(node *Node, newID int64) (*Node, []byte, error) {
	numKeys := node.numKeys
	nL := numKeys / 2
	nR := numKeys - nL - 1

	right := newNode(newID, Interior, idx.keySize, idx.valueSize, idx.blockSize)
	right.rootNode = node.rootNode

	splitKey, err := node.getKey(nL)
	if err != nil {
		return nil, nil, err
	}

	stride := idx.keySize + pointerWidth
	srcOff := node.resolvePtr(nL + 1)
	dstOff := right.resolvePtr(0)
	length := nR*stride + pointerWidth
	copy(right.data[dstOff:dstOff+length], node.data[srcOff:srcOff+length])

	node.numKeys = nL
	right.numKeys = nR

	if err := idx.writeNode(node); err != nil {
		return nil, nil, err
	}
	if err := idx.writeNode(right); err != nil {
		return nil, nil, err
	}
	return right, splitKey, nil
}
