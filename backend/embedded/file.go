package embedded

import (
	"io"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/index"
)

// File is a cursor over one embedded file's content. The cursor may legally
// sit past the end of the content; reads there report io.EOF. A File belongs
// to a single consumer and is not internally synchronized.
type File struct {
	entry *index.File
	index int64
}

// Read copies bytes from the current cursor into p, bounded by len(p) and
// the remaining content, and advances the cursor by exactly the bytes
// copied. At or past the end it reports (0, io.EOF) idempotently.
func (f *File) Read(p []byte) (int, error) {
	contents := f.entry.Contents()
	if f.index >= int64(len(contents)) {
		return 0, io.EOF
	}

	n := copy(p, contents[f.index:])
	f.index += int64(n)

	return n, nil
}

// Seek recomputes the cursor for the given whence mode and returns the new
// position. Positions past the end are legal. Negative or overflowing
// results fail with ErrInvalidSeek and leave the cursor unchanged.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var next int64

	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		sum, ok := checkedAdd(f.index, offset)
		if !ok {
			return 0, staticfs.ErrInvalidSeek
		}
		next = sum
	case io.SeekEnd:
		sum, ok := checkedAdd(f.entry.Size(), offset)
		if !ok {
			return 0, staticfs.ErrInvalidSeek
		}
		next = sum
	default:
		return 0, staticfs.ErrInvalidSeek
	}

	if next < 0 {
		return 0, staticfs.ErrInvalidSeek
	}

	f.index = next

	return next, nil
}

// Close is a no-op; an embedded handle holds no resources.
func (f *File) Close() error {
	return nil
}

// Stat re-wraps the owned file entry as a metadata snapshot. It cannot fail:
// the entry a handle was opened over cannot disappear.
func (f *File) Stat() (staticfs.Metadata, error) {
	return &entryMetadata{entry: f.entry}, nil
}

// checkedAdd adds off to base, reporting overflow of the int64 range.
func checkedAdd(base, off int64) (int64, bool) {
	sum := base + off
	if (off > 0 && sum < base) || (off < 0 && sum > base) {
		return 0, false
	}

	return sum, true
}
