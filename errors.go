package staticfs

import (
	"errors"
	"fmt"
)

// Standard errors that Backend implementations should use.
var (
	// Path resolution errors
	ErrNotExist = errors.New("staticfs: file does not exist")

	// Backend lifecycle errors
	ErrBackendFailed      = errors.New("staticfs: backend initialization failed")
	ErrBackendUnsupported = errors.New("staticfs: backend capability unsupported")

	// I/O errors
	ErrInvalidSeek = errors.New("staticfs: invalid seek to a negative or overflowing position")
	ErrClosed      = errors.New("staticfs: file already closed")
	ErrBusy        = errors.New("staticfs: backend busy")
)

// NotFile reports that path is missing or does not resolve to a regular file.
func NotFile(path string) error {
	return fmt.Errorf("'%s' is not a file: %w", path, ErrNotExist)
}

// NotFound reports that path does not resolve to any entry.
func NotFound(path string) error {
	return fmt.Errorf("'%s' not found: %w", path, ErrNotExist)
}

// NoMetadata reports that an entry carries no modification time.
func NoMetadata(path string) error {
	return fmt.Errorf("cannot access metadata for '%s': %w", path, ErrNotExist)
}
