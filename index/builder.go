package index

import (
	"fmt"
	"time"

	"github.com/mwantia/staticfs/data"
	"github.com/tidwall/btree"
)

// Builder collects file entries and freezes them into an immutable Tree.
// A Builder is not safe for concurrent use; the Tree it builds is.
type Builder struct {
	files *btree.Map[string, *File]
	err   error
}

func NewBuilder() *Builder {
	return &Builder{
		files: btree.NewMap[string, *File](0),
	}
}

// AddFile registers a file under path with the given content. A zero
// modified time means the file carries no timestamp. Adding the same path
// twice keeps the last content.
func (b *Builder) AddFile(path string, contents []byte, modified time.Time) {
	key, err := data.Normalize(path)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return
	}

	if key == "" {
		if b.err == nil {
			b.err = data.InvalidPath(path)
		}
		return
	}

	b.files.Set(key, &File{
		path:     key,
		contents: contents,
		modified: modified,
	})
}

// Build freezes the collected files into a Tree, creating the intermediate
// directories. It fails if any added path was invalid or if a path is used
// both as a file and as a directory.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}

	root := &Dir{path: ""}
	dirs := map[string]*Dir{"": root}
	entries := btree.NewMap[string, Entry](0)

	var ensureDir func(key string) (*Dir, error)
	ensureDir = func(key string) (*Dir, error) {
		if dir, exists := dirs[key]; exists {
			return dir, nil
		}

		if _, exists := entries.Get(key); exists {
			return nil, fmt.Errorf("conflicting entry for '%s': %w", key, data.ErrInvalidPath)
		}

		parent, err := ensureDir(data.ParentKey(key))
		if err != nil {
			return nil, err
		}

		dir := &Dir{path: key}
		dirs[key] = dir
		entries.Set(key, dir)
		parent.entries = append(parent.entries, dir)

		return dir, nil
	}

	var buildErr error
	b.files.Scan(func(key string, file *File) bool {
		if _, exists := dirs[key]; exists {
			buildErr = fmt.Errorf("conflicting entry for '%s': %w", key, data.ErrInvalidPath)
			return false
		}

		parent, err := ensureDir(data.ParentKey(key))
		if err != nil {
			buildErr = err
			return false
		}

		entries.Set(key, file)
		parent.entries = append(parent.entries, file)

		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

	return &Tree{
		root:    root,
		entries: entries,
	}, nil
}
