// Package staticfs provides the storage-backend abstraction used by a
// static-content server to read file bytes and metadata without caring where
// those bytes physically live. Backends exist for an immutable in-memory
// resource tree (backend/embedded), the local filesystem (backend/local) and
// several stored variants (backend/s3, backend/sqlite, backend/postgres,
// backend/consul).
package staticfs

import (
	"context"
	"io"
	"time"
)

// Backend is the pluggable storage-access entry point mapping paths to files
// and metadata. Implementations must be safe for concurrent use; the file
// handles they return are not and belong to a single consumer.
type Backend interface {
	// Name returns the identifier name defined for this backend.
	Name() string

	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error

	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error

	// Capabilities returns the set of capabilities supported by this backend.
	Capabilities() *Capabilities

	// OpenFile resolves path to a regular file and returns a handle positioned
	// at offset zero. Paths that are missing or resolve to a directory fail
	// with an error matching ErrNotExist.
	OpenFile(ctx context.Context, path string) (File, error)

	// Stat resolves path to a metadata snapshot, for files and directories
	// alike. Missing paths fail with an error matching ErrNotExist.
	Stat(ctx context.Context, path string) (Metadata, error)
}

// File is an open, cursor-bearing stream over one file's byte content.
// Reads advance the cursor, seeks reposition it; seeking past the end is
// legal and later reads simply report io.EOF.
type File interface {
	io.Reader
	io.Seeker
	io.Closer

	// Stat returns a metadata snapshot for the file behind this handle.
	// It always succeeds for a handle obtained from a successful OpenFile.
	Stat() (Metadata, error)
}

// Metadata is a point-in-time snapshot of an entry's kind, size and
// modification time. Derivations are computed on demand from the resolved
// entry, not cached.
type Metadata interface {
	// IsDir reports whether the entry is a directory.
	IsDir() bool

	// Modified returns the entry's modification time. Directories and files
	// without a stored timestamp fail with an error matching ErrNotExist.
	Modified() (time.Time, error)

	// Size returns the byte length for files and 0 for directories.
	Size() int64
}
