package consul

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
	"github.com/mwantia/staticfs/index"
)

// envelope is the JSON value stored per file: the snapshot plus the raw
// content (base64-encoded by encoding/json).
type envelope struct {
	Stat    *data.FileStat `json:"stat"`
	Content []byte         `json:"content,omitempty"`
}

// OpenFile fetches the envelope under path and serves its content from memory.
func (cb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	key, err := data.Normalize(path)
	if err != nil {
		// Paths that cannot normalize into a key can never resolve.
		return nil, staticfs.NotFile(path)
	}

	if key == "" {
		return nil, staticfs.NotFile(path)
	}

	pair, _, err := cb.kv.Get(cb.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, staticfs.NotFile(path)
	}

	return fileFromPair(path, pair)
}

// fileFromPair decodes a fetched KV pair into a served handle. Populate never
// writes directory envelopes, but a hand-written entry could carry one.
func fileFromPair(path string, pair *api.KVPair) (staticfs.File, error) {
	obj, err := decodeEnvelope(pair)
	if err != nil {
		return nil, err
	}

	if obj.Stat.IsDir {
		return nil, staticfs.NotFile(path)
	}

	return staticfs.NewBytesFile(obj.Stat, obj.Content), nil
}

// Stat resolves path to stored metadata, treating populated key prefixes as
// virtual directories.
func (cb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	key, err := data.Normalize(path)
	if err != nil {
		return nil, staticfs.NotFound(path)
	}

	// The prefix root is always a directory.
	if key == "" {
		return staticfs.NewStatMetadata(&data.FileStat{Key: "", IsDir: true}), nil
	}

	pair, _, err := cb.kv.Get(cb.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	if pair != nil {
		obj, err := decodeEnvelope(pair)
		if err != nil {
			return nil, err
		}

		return staticfs.NewStatMetadata(obj.Stat), nil
	}

	// No entry under the key itself - check for a virtual directory.
	keys, _, err := cb.kv.Keys(cb.buildKey(key)+"/", "", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		return staticfs.NewStatMetadata(&data.FileStat{Key: key, IsDir: true}), nil
	}

	return nil, staticfs.NotFound(path)
}

// Populate mirrors an index tree into the KV store. Directories are not
// written; they exist implicitly as prefixes.
func (cb *Backend) Populate(ctx context.Context, tree *index.Tree) error {
	var scanErr error

	tree.Scan(func(entry index.Entry) bool {
		file, ok := entry.(*index.File)
		if !ok {
			return true
		}

		var value []byte
		value, scanErr = json.Marshal(&envelope{
			Stat:    file.Stat(),
			Content: file.Contents(),
		})
		if scanErr != nil {
			return false
		}

		_, scanErr = cb.kv.Put(&api.KVPair{
			Key:   cb.buildKey(file.Path()),
			Value: value,
		}, (&api.WriteOptions{}).WithContext(ctx))

		return scanErr == nil
	})

	return scanErr
}

func decodeEnvelope(pair *api.KVPair) (*envelope, error) {
	var obj envelope
	if err := json.Unmarshal(pair.Value, &obj); err != nil {
		return nil, fmt.Errorf("corrupt entry '%s': %w", pair.Key, err)
	}

	if obj.Stat == nil {
		return nil, fmt.Errorf("corrupt entry '%s': missing stat", pair.Key)
	}

	return &obj, nil
}
