package data

import (
	"encoding/json"
	"time"
)

// FileStat is a low-level snapshot of one stored entry. Stored backends keep
// it alongside the content and derive the metadata view from it.
type FileStat struct {
	// Relative key within the backend
	Key string `json:"key"`

	// True for directory entries
	IsDir bool `json:"is_dir"`

	// Size in bytes (0 for directories)
	Size int64 `json:"size"`

	// Last modification time; the zero value means no stored timestamp
	ModifyTime time.Time `json:"modify_time"`

	// Content MIME type
	ContentType ContentType `json:"content_type,omitempty"`
}

// Marshal provides JSON serialization for FileStat.
func (fs *FileStat) Marshal() ([]byte, error) {
	return json.Marshal(fs)
}

// Unmarshal provides JSON deserialization for FileStat.
func (fs *FileStat) Unmarshal(data []byte) error {
	return json.Unmarshal(data, &fs)
}

// Clone creates a copy of the snapshot.
func (fs *FileStat) Clone() *FileStat {
	clone := *fs
	return &clone
}
