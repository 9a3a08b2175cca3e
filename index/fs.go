package index

import (
	"io/fs"
	"time"
)

// FromFS builds a Tree from an fs.FS, typically a go:embed filesystem.
// Modification times are taken from the directory entries when the
// filesystem provides them; embed.FS does not, leaving the files without a
// timestamp. Directories without files are dropped, mirroring what go:embed
// can carry in the first place.
func FromFS(fsys fs.FS) (*Tree, error) {
	builder := NewBuilder()

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		contents, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		var modified time.Time
		if info, err := d.Info(); err == nil {
			modified = info.ModTime()
		}

		builder.AddFile(path, contents, modified)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return builder.Build()
}
