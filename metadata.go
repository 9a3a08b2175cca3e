package staticfs

import (
	"time"

	"github.com/mwantia/staticfs/data"
)

// statMetadata derives the Metadata view from a stored FileStat snapshot.
type statMetadata struct {
	stat *data.FileStat
}

// NewStatMetadata returns a Metadata view over a stored snapshot.
// Stored backends use it for entries fetched from their key index.
func NewStatMetadata(stat *data.FileStat) Metadata {
	return &statMetadata{stat: stat}
}

func (sm *statMetadata) IsDir() bool {
	return sm.stat.IsDir
}

func (sm *statMetadata) Modified() (time.Time, error) {
	if sm.stat.IsDir || sm.stat.ModifyTime.IsZero() {
		return time.Time{}, NoMetadata(sm.stat.Key)
	}

	return sm.stat.ModifyTime, nil
}

func (sm *statMetadata) Size() int64 {
	// Directories report zero length; callers rely on the sentinel value
	// instead of a special case.
	if sm.stat.IsDir {
		return 0
	}

	return sm.stat.Size
}
