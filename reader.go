package staticfs

import (
	"bytes"

	"github.com/mwantia/staticfs/data"
)

// BytesFile is a File over content fully materialized in memory. Stored
// backends that fetch whole objects before serving reads wrap the fetched
// bytes in a BytesFile to satisfy the cursor contract.
type BytesFile struct {
	reader *bytes.Reader
	stat   *data.FileStat
}

// NewBytesFile returns a handle positioned at offset zero over content.
// The stat snapshot backs the handle's Stat view.
func NewBytesFile(stat *data.FileStat, content []byte) *BytesFile {
	return &BytesFile{
		reader: bytes.NewReader(content),
		stat:   stat,
	}
}

// Read reads up to len(p) bytes at the current cursor and advances it.
// At end of content it reports (0, io.EOF).
func (bf *BytesFile) Read(p []byte) (int, error) {
	return bf.reader.Read(p)
}

// Seek repositions the cursor. Positions past the end are legal; negative
// results fail with ErrInvalidSeek and leave the cursor unchanged.
func (bf *BytesFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := bf.reader.Seek(offset, whence)
	if err != nil {
		return 0, ErrInvalidSeek
	}

	return pos, nil
}

// Close is a no-op; the content is already resident in memory.
func (bf *BytesFile) Close() error {
	return nil
}

// Stat returns the snapshot the handle was opened with.
func (bf *BytesFile) Stat() (Metadata, error) {
	return NewStatMetadata(bf.stat), nil
}
