package btree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Style selects an emitter for Display: the sorted key/value enumeration,
// an indented depth-first structural dump with node kinds colored, or a
// Graphviz digraph of the tree shape.
type Style int

const (
	SortedKeyValue Style = iota
	DepthFirst
	DepthDot
)

var (
	colorRoot     = color.New(color.FgGreen, color.Bold)
	colorInterior = color.New(color.FgCyan)
	colorLeaf     = color.New(color.FgYellow)
)

// Display writes a traversal of the tree to w in the requested style.
func (idx *Index) Display(w io.Writer, style Style) error {
	switch style {
	case SortedKeyValue:
		return idx.displaySorted(w)
	case DepthFirst:
		return idx.displayDepthFirst(w, idx.rootNode, 0)
	case DepthDot:
		fmt.Fprintln(w, "digraph btree {")
		fmt.Fprintln(w, "  node [shape=record];")
		if err := idx.displayDot(w, idx.rootNode); err != nil {
			return err
		}
		fmt.Fprintln(w, "}")
		return nil
	default:
		return fmt.Errorf("btree: unknown display style %d", style)
	}
}

// displaySorted is an in-order walk: at an interior node visit P0, then
// for each i visit P_{i+1}; leaves emit their key/value pairs in slot
// order, which (since only leaves carry data) produces the full sorted
// sequence.
func (idx *Index) displaySorted(w io.Writer) error {
	return idx.walkSorted(idx.rootNode, func(key, value []byte) error {
		_, err := fmt.Fprintf(w, "%s -> %s\n", formatBytes(key), formatBytes(value))
		return err
	})
}

func (idx *Index) walkSorted(nodeID int64, emit func(key, value []byte) error) error {
	node, err := idx.readNode(nodeID)
	if err != nil {
		return err
	}
	if node.nodeType == Leaf {
		for i := 0; i < node.numKeys; i++ {
			k, err := node.getKey(i)
			if err != nil {
				return err
			}
			v, err := node.getValue(i)
			if err != nil {
				return err
			}
			if err := emit(k, v); err != nil {
				return err
			}
		}
		return nil
	}
	if node.numKeys == 0 {
		return nil
	}
	p0, err := node.getPtr(0)
	if err != nil {
		return err
	}
	if err := idx.walkSorted(p0, emit); err != nil {
		return err
	}
	for i := 0; i < node.numKeys; i++ {
		p, err := node.getPtr(i + 1)
		if err != nil {
			return err
		}
		if err := idx.walkSorted(p, emit); err != nil {
			return err
		}
	}
	return nil
}

func (idx *Index) displayDepthFirst(w io.Writer, nodeID int64, depth int) error {
	node, err := idx.readNode(nodeID)
	if err != nil {
		return err
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	c := colorInterior
	switch node.nodeType {
	case Root:
		c = colorRoot
	case Leaf:
		c = colorLeaf
	}

	if node.nodeType == Leaf {
		c.Fprintf(w, "%s[block %d] LEAF numkeys=%d\n", indent, nodeID, node.numKeys)
		for i := 0; i < node.numKeys; i++ {
			k, _ := node.getKey(i)
			v, _ := node.getValue(i)
			fmt.Fprintf(w, "%s  %s -> %s\n", indent, formatBytes(k), formatBytes(v))
		}
		return nil
	}

	c.Fprintf(w, "%s[block %d] %s numkeys=%d\n", indent, nodeID, node.nodeType, node.numKeys)
	if node.numKeys == 0 {
		return nil
	}
	p0, err := node.getPtr(0)
	if err != nil {
		return err
	}
	if err := idx.displayDepthFirst(w, p0, depth+1); err != nil {
		return err
	}
	for i := 0; i < node.numKeys; i++ {
		k, _ := node.getKey(i)
		fmt.Fprintf(w, "%s  separator: %s\n", indent, formatBytes(k))
		p, err := node.getPtr(i + 1)
		if err != nil {
			return err
		}
		if err := idx.displayDepthFirst(w, p, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// dotEscaper escapes backslashes and the quotes formatBytes puts around
// printable keys, so a label stays one DOT quoted string.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (idx *Index) displayDot(w io.Writer, nodeID int64) error {
	node, err := idx.readNode(nodeID)
	if err != nil {
		return err
	}

	if node.nodeType == Leaf {
		label := fmt.Sprintf("LEAF %d", nodeID)
		for i := 0; i < node.numKeys; i++ {
			k, _ := node.getKey(i)
			v, _ := node.getValue(i)
			label += fmt.Sprintf("|%s=%s", formatBytes(k), formatBytes(v))
		}
		fmt.Fprintf(w, "  n%d [label=\"%s\"];\n", nodeID, dotEscaper.Replace(label))
		return nil
	}

	label := fmt.Sprintf("%s %d", node.nodeType, nodeID)
	for i := 0; i < node.numKeys; i++ {
		k, _ := node.getKey(i)
		label += fmt.Sprintf("|%s", formatBytes(k))
	}
	fmt.Fprintf(w, "  n%d [label=\"%s\"];\n", nodeID, dotEscaper.Replace(label))

	if node.numKeys == 0 {
		return nil
	}
	p0, err := node.getPtr(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  n%d -> n%d;\n", nodeID, p0)
	if err := idx.displayDot(w, p0); err != nil {
		return err
	}
	for i := 0; i < node.numKeys; i++ {
		p, err := node.getPtr(i + 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  n%d -> n%d;\n", nodeID, p)
		if err := idx.displayDot(w, p); err != nil {
			return err
		}
	}
	return nil
}

// formatBytes renders a fixed-width key or value for display: as a quoted
// ASCII string when printable, else as hex.
func formatBytes(b []byte) string {
	printable := true
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if printable {
		return fmt.Sprintf("%q", string(b))
	}
	return fmt.Sprintf("%x", b)
}
