package sqlite

import (
	"context"
	"database/sql"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
	"github.com/mwantia/staticfs/index"
)

// OpenFile fetches the full content for path and serves it from memory.
func (sb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	key, err := data.Normalize(path)
	if err != nil {
		// Paths that cannot normalize into a key can never resolve.
		return nil, staticfs.NotFile(path)
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	stat, exists := sb.keys.Get(key)
	if !exists || stat.IsDir {
		return nil, staticfs.NotFile(path)
	}

	var content []byte
	err = sb.db.QueryRowContext(ctx,
		"SELECT content FROM static_objects WHERE key = ? AND is_dir = 0",
		key).Scan(&content)

	if err == sql.ErrNoRows {
		return nil, staticfs.NotFile(path)
	}
	if err != nil {
		return nil, err
	}

	return staticfs.NewBytesFile(stat.Clone(), content), nil
}

// Stat answers from the in-memory key index without touching the database.
func (sb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	key, err := data.Normalize(path)
	if err != nil {
		return nil, staticfs.NotFound(path)
	}

	// The root always exists, even for an empty store.
	if key == "" {
		return staticfs.NewStatMetadata(&data.FileStat{Key: "", IsDir: true}), nil
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	stat, exists := sb.keys.Get(key)
	if !exists {
		return nil, staticfs.NotFound(path)
	}

	return staticfs.NewStatMetadata(stat.Clone()), nil
}

// Populate mirrors an index tree into the database, replacing entries that
// share a key. Provisioning is the only write path; served handles stay
// read-only.
func (sb *Backend) Populate(ctx context.Context, tree *index.Tree) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var scanErr error
	tree.Scan(func(entry index.Entry) bool {
		stat := entry.Stat()

		var content []byte
		if file, ok := entry.(*index.File); ok {
			content = file.Contents()
		}

		var modifyUnix int64
		if !stat.ModifyTime.IsZero() {
			modifyUnix = stat.ModifyTime.Unix()
		}

		_, scanErr = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO static_objects (key, is_dir, size, modify_time, content_type, content)
			VALUES (?, ?, ?, ?, ?, ?)
		`, stat.Key, boolToInt(stat.IsDir), stat.Size, modifyUnix, string(stat.ContentType), content)

		return scanErr == nil
	})
	if scanErr != nil {
		return scanErr
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	tree.Scan(func(entry index.Entry) bool {
		stat := entry.Stat()
		sb.keys.Set(stat.Key, stat)
		return true
	})

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
