package index

import (
	"time"

	"github.com/mwantia/staticfs/data"
)

// Entry is one node of the resource tree, either a *File or a *Dir.
// Entries are immutable once the tree is built.
type Entry interface {
	// Path returns the slash-separated key of this entry relative to the root.
	Path() string

	// IsDir reports whether this entry is a directory.
	IsDir() bool

	// Stat returns a fresh FileStat snapshot of this entry. Stored backends
	// persist these snapshots during provisioning.
	Stat() *data.FileStat
}

// File is a regular file entry holding its full byte content in memory.
type File struct {
	path     string
	contents []byte
	modified time.Time
}

func (f *File) Path() string {
	return f.path
}

func (f *File) IsDir() bool {
	return false
}

// Contents returns the file's byte content.
// The returned slice is shared and must not be modified.
func (f *File) Contents() []byte {
	return f.contents
}

// Size returns the byte length of the content.
func (f *File) Size() int64 {
	return int64(len(f.contents))
}

// Modified returns the stored modification time and whether one exists.
// Content packed at build time usually carries none.
func (f *File) Modified() (time.Time, bool) {
	return f.modified, !f.modified.IsZero()
}

// ContentType derives the MIME type from the file extension.
func (f *File) ContentType() data.ContentType {
	return data.GetMIMEType(f.path)
}

// Stat returns a fresh FileStat snapshot of this file.
func (f *File) Stat() *data.FileStat {
	return &data.FileStat{
		Key:         f.path,
		Size:        f.Size(),
		ModifyTime:  f.modified,
		ContentType: f.ContentType(),
	}
}

// Dir is a directory entry. The root directory has the empty path.
type Dir struct {
	path    string
	entries []Entry
}

func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) IsDir() bool {
	return true
}

// Entries returns the direct children of this directory in key order.
// The returned slice is shared and must not be modified.
func (d *Dir) Entries() []Entry {
	return d.entries
}

// Stat returns a fresh FileStat snapshot of this directory.
func (d *Dir) Stat() *data.FileStat {
	return &data.FileStat{
		Key:   d.path,
		IsDir: true,
	}
}
