// Package local serves files from a directory on the real filesystem. It is
// the on-disk counterpart of backend/embedded and implements the same
// read-only contract.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
)

// Backend resolves paths below a root directory.
type Backend struct {
	root string
}

// New creates a backend serving from the given root directory.
func New(root string) *Backend {
	return &Backend{root: root}
}

// Name returns the identifier name defined for this backend.
func (*Backend) Name() string {
	return "local"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (lb *Backend) Open(ctx context.Context) error {
	info, err := os.Stat(lb.root)
	if err != nil {
		return fmt.Errorf("root '%s' unavailable: %w", lb.root, staticfs.ErrBackendFailed)
	}

	if !info.IsDir() {
		return fmt.Errorf("root '%s' is not a directory: %w", lb.root, staticfs.ErrBackendFailed)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (lb *Backend) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (lb *Backend) Capabilities() *staticfs.Capabilities {
	return &staticfs.Capabilities{
		Capabilities: []staticfs.Capability{
			staticfs.CapabilityModTime,
			staticfs.CapabilityContentType,
		},
	}
}

// OpenFile opens path below the root. Missing paths and directories fail as
// "not a file".
func (lb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	fullPath, err := lb.resolve(path)
	if err != nil {
		// Paths that cannot normalize into a key can never resolve.
		return nil, staticfs.NotFile(path)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, staticfs.NotFile(path)
		}

		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, staticfs.NotFile(path)
	}

	return &localFile{file: file, path: path}, nil
}

// Stat resolves path to a metadata snapshot, for files and directories alike.
func (lb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	fullPath, err := lb.resolve(path)
	if err != nil {
		return nil, staticfs.NotFound(path)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, staticfs.NotFound(path)
		}

		return nil, err
	}

	return &fileInfoMetadata{path: path, info: info}, nil
}

func (lb *Backend) resolve(path string) (string, error) {
	key, err := data.Normalize(path)
	if err != nil {
		return "", err
	}

	return filepath.Join(lb.root, filepath.FromSlash(key)), nil
}
