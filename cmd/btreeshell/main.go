// btreeshell drives a disk-resident B-Tree index from the command line.
// Usage: btreeshell <index-file> <command> [args...]
// Errors go to stderr, a bad invocation exits 1, everything else is
// delegated to the library packages.
package main

import (
	"fmt"
	"os"
	"strconv"

	"blockbtree/btree"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(1)
	}

	path := os.Args[1]
	cmd := os.Args[2]
	args := os.Args[3:]

	if err := run(path, cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <index-file> <command> [args...]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  create <keysize> <valuesize> <blocksize> <numblocks>\n")
	fmt.Fprintf(os.Stderr, "  insert <key> <value>\n")
	fmt.Fprintf(os.Stderr, "  lookup <key>\n")
	fmt.Fprintf(os.Stderr, "  update <key> <value>\n")
	fmt.Fprintf(os.Stderr, "  display <sorted|depth|dot>\n")
	fmt.Fprintf(os.Stderr, "  sanity\n")
	fmt.Fprintf(os.Stderr, "  stats\n")
}

func run(path, cmd string, args []string) error {
	if cmd == "create" {
		return doCreate(path, args)
	}

	// Every other command mounts an existing index. The key/value widths
	// and block geometry are recovered from the superblock header, so the
	// shell does not need to remember them between invocations.
	idx, err := btree.OpenFile(path, indexOptions()...)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer idx.Close()

	switch cmd {
	case "insert":
		return doInsert(idx, args)
	case "lookup":
		return doLookup(idx, args)
	case "update":
		return doUpdate(idx, args)
	case "display":
		return doDisplay(idx, args)
	case "sanity":
		return doSanity(idx)
	case "stats":
		return doStats(idx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func doCreate(path string, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("create requires keysize valuesize blocksize numblocks")
	}
	keySize, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("keysize: %w", err)
	}
	valueSize, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("valuesize: %w", err)
	}
	blockSize, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("blocksize: %w", err)
	}
	numBlocks, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("numblocks: %w", err)
	}

	idx, err := btree.CreateFile(path, keySize, valueSize, blockSize, numBlocks, indexOptions()...)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return idx.Close()
}

// indexOptions maps shell environment knobs onto index options.
// BTREE_VERBOSE=1 turns on structural trace lines.
func indexOptions() []btree.Option {
	var opts []btree.Option
	if os.Getenv("BTREE_VERBOSE") != "" {
		opts = append(opts, btree.WithVerbose())
	}
	return opts
}

func doInsert(idx *btree.Index, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("insert requires key value")
	}
	key, err := fitWidth(args[0], idx.KeySize())
	if err != nil {
		return err
	}
	value, err := fitWidth(args[1], idx.ValueSize())
	if err != nil {
		return err
	}
	return idx.Insert(key, value)
}

func doLookup(idx *btree.Index, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("lookup requires key")
	}
	key, err := fitWidth(args[0], idx.KeySize())
	if err != nil {
		return err
	}
	value, err := idx.Lookup(key)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", value)
	return nil
}

func doUpdate(idx *btree.Index, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("update requires key value")
	}
	key, err := fitWidth(args[0], idx.KeySize())
	if err != nil {
		return err
	}
	value, err := fitWidth(args[1], idx.ValueSize())
	if err != nil {
		return err
	}
	return idx.Update(key, value)
}

func doDisplay(idx *btree.Index, args []string) error {
	style := btree.SortedKeyValue
	if len(args) == 1 {
		switch args[0] {
		case "sorted":
			style = btree.SortedKeyValue
		case "depth":
			style = btree.DepthFirst
		case "dot":
			style = btree.DepthDot
		default:
			return fmt.Errorf("unknown display style %q", args[0])
		}
	}
	return idx.Display(os.Stdout, style)
}

func doSanity(idx *btree.Index) error {
	if err := idx.SanityCheck(); err != nil {
		return err
	}
	fmt.Println("OK")
	return nil
}

func doStats(idx *btree.Index) error {
	stats, err := idx.Stats()
	if err != nil {
		return err
	}
	fmt.Println(stats.String())
	return nil
}

// fitWidth pads or rejects a CLI-supplied string against a fixed key/value
// width: shorter strings are zero-padded on the right, longer ones are an
// error rather than silently truncated.
func fitWidth(s string, width int) ([]byte, error) {
	b := []byte(s)
	if len(b) > width {
		return nil, fmt.Errorf("%q is %d bytes, wider than the fixed width %d", s, len(b), width)
	}
	out := make([]byte, width)
	copy(out, b)
	return out, nil
}
