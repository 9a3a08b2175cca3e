// Package index holds the immutable resource tree a static-content backend
// serves from. A Tree is built once at startup, via a Builder or from an
// fs.FS (typically a go:embed filesystem), and is never mutated afterwards,
// so lookups are safe for unsynchronized concurrent use.
package index

import (
	"github.com/mwantia/staticfs/data"
	"github.com/tidwall/btree"
)

// Tree is a rooted, immutable tree of directory and file entries keyed by
// slash-separated paths.
type Tree struct {
	root    *Dir
	entries *btree.Map[string, Entry]
}

// Root returns the root directory.
func (t *Tree) Root() *Dir {
	return t.root
}

// Len returns the number of entries excluding the root.
func (t *Tree) Len() int {
	return t.entries.Len()
}

// LookupEntry resolves path to a file or directory entry.
// Paths are normalized first; the empty path and "/" resolve to the root.
func (t *Tree) LookupEntry(path string) (Entry, bool) {
	key, err := data.Normalize(path)
	if err != nil {
		return nil, false
	}

	if key == "" {
		return t.root, true
	}

	return t.entries.Get(key)
}

// LookupFile resolves path to a file entry.
// Directories and missing paths report false.
func (t *Tree) LookupFile(path string) (*File, bool) {
	entry, ok := t.LookupEntry(path)
	if !ok {
		return nil, false
	}

	file, ok := entry.(*File)
	return file, ok
}

// Scan visits every entry except the root in key order until fn returns false.
func (t *Tree) Scan(fn func(Entry) bool) {
	t.entries.Scan(func(key string, entry Entry) bool {
		return fn(entry)
	})
}
