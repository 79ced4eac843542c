package btree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestDisplaySortedKeyValue(t *testing.T) {
	idx, _ := newTestIndex(t, 16, 128, 4, 4)

	if err := idx.Insert([]byte("bbbb"), []byte("2222")); err != nil {
		t.Fatalf("Insert(bbbb): %v", err)
	}
	if err := idx.Insert([]byte("aaaa"), []byte("1111")); err != nil {
		t.Fatalf("Insert(aaaa): %v", err)
	}

	var buf bytes.Buffer
	if err := idx.Display(&buf, SortedKeyValue); err != nil {
		t.Fatalf("Display: %v", err)
	}
	want := "\"aaaa\" -> \"1111\"\n\"bbbb\" -> \"2222\"\n"
	if buf.String() != want {
		t.Errorf("sorted display = %q, want %q", buf.String(), want)
	}
}

func TestDisplayDepthFirst(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	idx, _ := newTestIndex(t, 16, 128, 4, 4)
	for _, kv := range [][2]string{{"cccc", "3333"}, {"aaaa", "1111"}, {"bbbb", "2222"}} {
		if err := idx.Insert([]byte(kv[0]), []byte(kv[1])); err != nil {
			t.Fatalf("Insert(%q): %v", kv[0], err)
		}
	}

	var buf bytes.Buffer
	if err := idx.Display(&buf, DepthFirst); err != nil {
		t.Fatalf("Display: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ROOT") {
		t.Errorf("depth-first dump missing ROOT line:\n%s", out)
	}
	if !strings.Contains(out, "LEAF") {
		t.Errorf("depth-first dump missing LEAF lines:\n%s", out)
	}
	if !strings.Contains(out, "\"aaaa\" -> \"1111\"") {
		t.Errorf("depth-first dump missing pair aaaa/1111:\n%s", out)
	}
}

func TestDisplayDepthDot(t *testing.T) {
	idx, _ := newTestIndex(t, 16, 128, 4, 4)
	if err := idx.Insert([]byte("aaaa"), []byte("1111")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if err := idx.Display(&buf, DepthDot); err != nil {
		t.Fatalf("Display: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph btree {\n") {
		t.Errorf("dot dump does not open a digraph:\n%s", out)
	}
	if !strings.Contains(out, "->") {
		t.Errorf("dot dump has no edges:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("dot dump does not close the digraph:\n%s", out)
	}
}

func TestDisplayUnknownStyle(t *testing.T) {
	idx, _ := newTestIndex(t, 16, 128, 4, 4)

	var buf bytes.Buffer
	if err := idx.Display(&buf, Style(99)); err == nil {
		t.Error("Display with unknown style should fail")
	}
}

func TestFormatBytesHexFallback(t *testing.T) {
	if got := formatBytes([]byte("abcd")); got != "\"abcd\"" {
		t.Errorf("formatBytes(abcd) = %q", got)
	}
	if got := formatBytes([]byte{0x00, 0xff}); got != "00ff" {
		t.Errorf("formatBytes(00ff) = %q", got)
	}
}
