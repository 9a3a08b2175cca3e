package embedded

import (
	"time"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/index"
)

// entryMetadata derives kind, size and modification time lazily from one
// resolved index entry.
type entryMetadata struct {
	entry index.Entry
}

func (em *entryMetadata) IsDir() bool {
	return em.entry.IsDir()
}

func (em *entryMetadata) Modified() (time.Time, error) {
	if file, ok := em.entry.(*index.File); ok {
		if modified, ok := file.Modified(); ok {
			return modified, nil
		}
	}

	// Directories never carry a modification time in this model.
	return time.Time{}, staticfs.NoMetadata(em.entry.Path())
}

func (em *entryMetadata) Size() int64 {
	if file, ok := em.entry.(*index.File); ok {
		return file.Size()
	}

	// Directories report zero length; callers rely on the sentinel value.
	return 0
}

var _ staticfs.Metadata = (*entryMetadata)(nil)
