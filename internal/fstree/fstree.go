package fstree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a filesystem node under consideration. Children are scanned
// lazily and cached for the lifetime of the Entry; entries are constructed
// per visited node during traversal and never persisted.
type Entry struct {
	Path string
	Dir  bool

	children []*Entry
	scanned  bool
}

// Stat constructs an Entry for the given path, which must exist.
func Stat(path string) (*Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Entry{Path: path, Dir: info.IsDir()}, nil
}

// Name returns the base name of the entry.
func (e *Entry) Name() string {
	return filepath.Base(e.Path)
}

// Stem returns the base name without its final extension.
func (e *Entry) Stem() string {
	name := e.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Children returns the direct children of a directory entry, sorted by name
// so traversal order is deterministic across platforms. Files have no
// children. The scan result is cached on the entry.
func (e *Entry) Children() ([]*Entry, error) {
	if !e.Dir {
		return nil, nil
	}
	if e.scanned {
		return e.children, nil
	}
	dirents, err := os.ReadDir(e.Path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", e.Path, err)
	}
	children := make([]*Entry, 0, len(dirents))
	for _, d := range dirents {
		children = append(children, &Entry{
			Path: filepath.Join(e.Path, d.Name()),
			Dir:  d.IsDir(),
		})
	}
	e.children = children
	e.scanned = true
	return e.children, nil
}

// Descendants returns every entry below a directory in pre-order, not
// including the entry itself.
func (e *Entry) Descendants() ([]*Entry, error) {
	if !e.Dir {
		return nil, nil
	}
	var out []*Entry
	children, err := e.Children()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		out = append(out, child)
		below, err := child.Descendants()
		if err != nil {
			return nil, err
		}
		out = append(out, below...)
	}
	return out, nil
}
