package local

import (
	"os"
	"time"

	"github.com/mwantia/staticfs"
)

// localFile wraps an open *os.File; the kernel keeps the cursor.
type localFile struct {
	file *os.File
	path string
}

func (lf *localFile) Read(p []byte) (int, error) {
	return lf.file.Read(p)
}

func (lf *localFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := lf.file.Seek(offset, whence)
	if err != nil {
		// The kernel rejects the same negative or overflowing positions the
		// contract names; surface them uniformly.
		return 0, staticfs.ErrInvalidSeek
	}

	return pos, nil
}

func (lf *localFile) Close() error {
	return lf.file.Close()
}

func (lf *localFile) Stat() (staticfs.Metadata, error) {
	info, err := lf.file.Stat()
	if err != nil {
		return nil, err
	}

	return &fileInfoMetadata{path: lf.path, info: info}, nil
}

// fileInfoMetadata derives the metadata view from an os.FileInfo.
type fileInfoMetadata struct {
	path string
	info os.FileInfo
}

func (fm *fileInfoMetadata) IsDir() bool {
	return fm.info.IsDir()
}

func (fm *fileInfoMetadata) Modified() (time.Time, error) {
	if fm.info.IsDir() {
		return time.Time{}, staticfs.NoMetadata(fm.path)
	}

	return fm.info.ModTime(), nil
}

func (fm *fileInfoMetadata) Size() int64 {
	// Some filesystems report a block size for directories; the contract
	// pins directories to zero length.
	if fm.info.IsDir() {
		return 0
	}

	return fm.info.Size()
}
