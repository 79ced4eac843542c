package btree

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	in := header{
		nodeType:  Interior,
		keySize:   4,
		valueSize: 8,
		blockSize: 256,
		rootNode:  17,
		freeList:  42,
		numKeys:   3,
	}
	buf := make([]byte, HeaderSize)
	in.encode(buf)
	out := decodeHeader(buf)
	if out != in {
		t.Errorf("decoded header = %+v, want %+v", out, in)
	}
}

func TestCapacityArithmetic(t *testing.T) {
	// blockSize 128, keySize 4, valueSize 4, pointerWidth 8:
	// leaf slot area is 92 bytes -> 11 key/value pairs;
	// interior reserves 8 for the leading pointer -> 7 key/pointer pairs.
	leaf := newNode(1, Leaf, 4, 4, 128)
	if got := leaf.capacity(); got != 11 {
		t.Errorf("leaf capacity = %d, want 11", got)
	}
	interior := newNode(2, Interior, 4, 4, 128)
	if got := interior.capacity(); got != 7 {
		t.Errorf("interior capacity = %d, want 7", got)
	}
	root := newNode(3, Root, 4, 4, 128)
	if got := root.capacity(); got != 7 {
		t.Errorf("root capacity = %d, want 7", got)
	}
}

func TestLeafSlotAccessors(t *testing.T) {
	n := newNode(1, Leaf, 4, 4, 128)
	n.numKeys = 3

	pairs := [][2]string{{"aaaa", "1111"}, {"bbbb", "2222"}, {"cccc", "3333"}}
	for i, p := range pairs {
		if err := n.setKey(i, []byte(p[0])); err != nil {
			t.Fatalf("setKey(%d): %v", i, err)
		}
		if err := n.setValue(i, []byte(p[1])); err != nil {
			t.Fatalf("setValue(%d): %v", i, err)
		}
	}
	for i, p := range pairs {
		k, err := n.getKey(i)
		if err != nil {
			t.Fatalf("getKey(%d): %v", i, err)
		}
		if !bytes.Equal(k, []byte(p[0])) {
			t.Errorf("getKey(%d) = %q, want %q", i, k, p[0])
		}
		v, err := n.getValue(i)
		if err != nil {
			t.Fatalf("getValue(%d): %v", i, err)
		}
		if !bytes.Equal(v, []byte(p[1])) {
			t.Errorf("getValue(%d) = %q, want %q", i, v, p[1])
		}
	}
}

func TestInteriorSlotAccessors(t *testing.T) {
	n := newNode(1, Interior, 4, 4, 128)
	n.numKeys = 2

	// Layout P0 K0 P1 K1 P2: pointers outnumber keys by one.
	for i, ptr := range []int64{10, 20, 30} {
		if err := n.setPtr(i, ptr); err != nil {
			t.Fatalf("setPtr(%d): %v", i, err)
		}
	}
	if err := n.setKey(0, []byte("mmmm")); err != nil {
		t.Fatalf("setKey(0): %v", err)
	}
	if err := n.setKey(1, []byte("tttt")); err != nil {
		t.Fatalf("setKey(1): %v", err)
	}

	for i, want := range []int64{10, 20, 30} {
		got, err := n.getPtr(i)
		if err != nil {
			t.Fatalf("getPtr(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("getPtr(%d) = %d, want %d", i, got, want)
		}
	}
	k, err := n.getKey(1)
	if err != nil {
		t.Fatalf("getKey(1): %v", err)
	}
	if !bytes.Equal(k, []byte("tttt")) {
		t.Errorf("getKey(1) = %q, want %q", k, "tttt")
	}
}

func TestSlotAccessorsOutOfRange(t *testing.T) {
	n := newNode(1, Leaf, 4, 4, 128)
	n.numKeys = 2

	if _, err := n.getKey(2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("getKey(2) error = %v, want ErrOutOfRange", err)
	}
	if _, err := n.getKey(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("getKey(-1) error = %v, want ErrOutOfRange", err)
	}
	if err := n.setValue(5, []byte("xxxx")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("setValue(5) error = %v, want ErrOutOfRange", err)
	}

	in := newNode(2, Interior, 4, 4, 128)
	in.numKeys = 2
	// Pointer index numKeys is the last legal one.
	if err := in.setPtr(2, 7); err != nil {
		t.Errorf("setPtr(2): %v", err)
	}
	if err := in.setPtr(3, 7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("setPtr(3) error = %v, want ErrOutOfRange", err)
	}
}

func TestNodeBytesSyncsHeader(t *testing.T) {
	n := newNode(9, Leaf, 4, 4, 128)
	n.numKeys = 5
	n.freeList = 77

	decoded := decodeNode(9, n.bytes())
	if decoded.nodeType != Leaf {
		t.Errorf("decoded type = %s, want LEAF", decoded.nodeType)
	}
	if decoded.numKeys != 5 {
		t.Errorf("decoded numKeys = %d, want 5", decoded.numKeys)
	}
	if decoded.freeList != 77 {
		t.Errorf("decoded freeList = %d, want 77", decoded.freeList)
	}
}
