// Package embedded serves files out of an immutable resource tree held
// entirely in memory, typically built from a go:embed filesystem at startup.
// No operation performs real I/O; the backend only references the tree and
// never owns or copies it.
package embedded

import (
	"context"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/index"
)

// Backend resolves paths against one index.Tree. It is stateless beyond the
// tree reference and therefore safe for concurrent use without locking.
type Backend struct {
	tree *index.Tree
}

// New creates a backend over an already-built tree. The tree must outlive
// the backend and every handle opened through it.
func New(tree *index.Tree) *Backend {
	return &Backend{tree: tree}
}

// Name returns the identifier name defined for this backend.
func (*Backend) Name() string {
	return "embedded"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (eb *Backend) Open(ctx context.Context) error {
	if eb.tree == nil {
		return staticfs.ErrBackendFailed
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (eb *Backend) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (eb *Backend) Capabilities() *staticfs.Capabilities {
	return &staticfs.Capabilities{
		Capabilities: []staticfs.Capability{
			staticfs.CapabilityModTime,
			staticfs.CapabilityContentType,
		},
	}
}

// OpenFile resolves path to a file entry and returns a handle with its
// cursor at zero. Missing paths and directories fail as "not a file".
func (eb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	file, ok := eb.tree.LookupFile(path)
	if !ok {
		return nil, staticfs.NotFile(path)
	}

	return &File{entry: file}, nil
}

// Stat resolves path to a metadata snapshot over the matching entry, file or
// directory. The snapshot derives its fields lazily from the entry.
func (eb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	entry, ok := eb.tree.LookupEntry(path)
	if !ok {
		return nil, staticfs.NotFound(path)
	}

	return &entryMetadata{entry: entry}, nil
}
