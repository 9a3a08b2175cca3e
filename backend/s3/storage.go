package s3

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
	"github.com/mwantia/staticfs/index"
)

// OpenFile opens the object under path. The returned handle streams and
// seeks directly against the object store.
func (sb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	key, err := data.Normalize(path)
	if err != nil {
		// Paths that cannot normalize into a key can never resolve.
		return nil, staticfs.NotFile(path)
	}

	if key == "" {
		return nil, staticfs.NotFile(path)
	}

	object, err := sb.client.GetObject(ctx, sb.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat forces the existence check.
	info, err := object.Stat()
	if err != nil {
		object.Close()

		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, staticfs.NotFile(path)
		}

		return nil, err
	}

	return &s3File{object: object, info: info}, nil
}

// Stat resolves path to object metadata, treating populated key prefixes as
// virtual directories.
func (sb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	key, err := data.Normalize(path)
	if err != nil {
		return nil, staticfs.NotFound(path)
	}

	// The bucket root is always a directory.
	if key == "" {
		return &objectMetadata{key: key, dir: true}, nil
	}

	info, err := sb.client.StatObject(ctx, sb.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return &objectMetadata{key: key, info: info}, nil
	}

	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return nil, err
	}

	dir, err := sb.isVirtualDir(ctx, key)
	if err != nil {
		return nil, err
	}
	if dir {
		return &objectMetadata{key: key, dir: true}, nil
	}

	return nil, staticfs.NotFound(path)
}

// isVirtualDir reports whether any object lives under key as a prefix.
func (sb *Backend) isVirtualDir(ctx context.Context, key string) (bool, error) {
	objects := sb.client.ListObjects(ctx, sb.bucket, minio.ListObjectsOptions{
		Prefix:  key + "/",
		MaxKeys: 1,
	})

	for object := range objects {
		if object.Err != nil {
			return false, object.Err
		}

		return true, nil
	}

	return false, nil
}

// Populate mirrors an index tree into the bucket. Directories are not
// uploaded; they exist implicitly as prefixes.
func (sb *Backend) Populate(ctx context.Context, tree *index.Tree) error {
	var scanErr error

	tree.Scan(func(entry index.Entry) bool {
		file, ok := entry.(*index.File)
		if !ok {
			return true
		}

		contents := file.Contents()
		_, scanErr = sb.client.PutObject(ctx, sb.bucket, file.Path(),
			bytes.NewReader(contents), int64(len(contents)),
			minio.PutObjectOptions{ContentType: string(file.ContentType())})

		return scanErr == nil
	})

	return scanErr
}

// s3File wraps a *minio.Object, which is natively readable and seekable.
type s3File struct {
	object *minio.Object
	info   minio.ObjectInfo
}

func (sf *s3File) Read(p []byte) (int, error) {
	return sf.object.Read(p)
}

func (sf *s3File) Seek(offset int64, whence int) (int64, error) {
	pos, err := sf.object.Seek(offset, whence)
	if err != nil {
		return 0, staticfs.ErrInvalidSeek
	}

	return pos, nil
}

func (sf *s3File) Close() error {
	return sf.object.Close()
}

func (sf *s3File) Stat() (staticfs.Metadata, error) {
	return &objectMetadata{key: sf.info.Key, info: sf.info}, nil
}

// objectMetadata derives the metadata view from object info; virtual
// directories carry no info at all.
type objectMetadata struct {
	key  string
	info minio.ObjectInfo
	dir  bool
}

func (om *objectMetadata) IsDir() bool {
	return om.dir
}

func (om *objectMetadata) Modified() (time.Time, error) {
	if om.dir || om.info.LastModified.IsZero() {
		return time.Time{}, staticfs.NoMetadata(om.key)
	}

	return om.info.LastModified, nil
}

func (om *objectMetadata) Size() int64 {
	if om.dir {
		return 0
	}

	return om.info.Size
}
