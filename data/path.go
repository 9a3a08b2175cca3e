package data

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidPath is returned for paths that cannot be normalized into a key.
var ErrInvalidPath = errors.New("staticfs: invalid path detected")

// InvalidPath reports a path that cannot be normalized into an index key.
func InvalidPath(p string) error {
	return fmt.Errorf("invalid path '%s': %w", p, ErrInvalidPath)
}

// Normalize converts a request path into an index-relative key.
// Keys are slash-separated without a leading slash; the empty key is the root.
// Paths escaping the root via ".." are rejected.
func Normalize(p string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(p, "/"))
	if cleaned == "." || cleaned == "/" {
		return "", nil
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", InvalidPath(p)
	}

	return cleaned, nil
}

// ParentKey returns the key of the directory containing key.
// The root's parent is the root itself.
func ParentKey(key string) string {
	parent := path.Dir(key)
	if parent == "." || parent == "/" {
		return ""
	}

	return parent
}

// BaseName returns the last element of key, or the empty string for the root.
func BaseName(key string) string {
	if key == "" {
		return ""
	}

	return path.Base(key)
}
