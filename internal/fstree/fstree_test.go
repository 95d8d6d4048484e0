package fstree

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatMissingPath(t *testing.T) {
	if _, err := Stat(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestStemAndName(t *testing.T) {
	e := Entry{Path: "/some/where/Show.S01E02.mkv"}
	if e.Name() != "Show.S01E02.mkv" {
		t.Fatalf("unexpected name %q", e.Name())
	}
	if e.Stem() != "Show.S01E02" {
		t.Fatalf("unexpected stem %q", e.Stem())
	}
}

func TestChildrenSortedAndCached(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entry, err := Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	children, err := entry.Children()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "bravo", "charlie"}
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, name := range want {
		if children[i].Name() != name {
			t.Fatalf("child %d is %q, want %q", i, children[i].Name(), name)
		}
	}

	// A file created after the first scan must not show up again.
	if err := os.WriteFile(filepath.Join(dir, "delta"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := entry.Children()
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(want) {
		t.Fatalf("cached scan returned %d children, want %d", len(again), len(want))
	}
}

func TestChildrenOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry, err := Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	children, err := entry.Children()
	if err != nil {
		t.Fatal(err)
	}
	if children != nil {
		t.Fatalf("files have no children, got %d", len(children))
	}
}

func TestDescendantsPreOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a", "b", "c.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := entry.Descendants()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c.mkv"}
	if len(nodes) != len(want) {
		t.Fatalf("got %d descendants, want %d", len(nodes), len(want))
	}
	for i, name := range want {
		if nodes[i].Name() != name {
			t.Fatalf("descendant %d is %q, want %q", i, nodes[i].Name(), name)
		}
	}
}
