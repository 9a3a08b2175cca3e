package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
	"github.com/mwantia/staticfs/index"
)

// OpenFile fetches the full content for path and serves it from memory.
func (pb *Backend) OpenFile(ctx context.Context, path string) (staticfs.File, error) {
	key, err := data.Normalize(path)
	if err != nil {
		// Paths that cannot normalize into a key can never resolve.
		return nil, staticfs.NotFile(path)
	}

	pb.mu.RLock()
	defer pb.mu.RUnlock()

	stat, exists := pb.keys.Get(key)
	if !exists || stat.IsDir {
		return nil, staticfs.NotFile(path)
	}

	var content []byte
	err = pb.pool.QueryRow(ctx,
		"SELECT content FROM static_objects WHERE key = $1 AND NOT is_dir",
		key).Scan(&content)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, staticfs.NotFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}

	return staticfs.NewBytesFile(stat.Clone(), content), nil
}

// Stat answers from the in-memory key index without touching the database.
func (pb *Backend) Stat(ctx context.Context, path string) (staticfs.Metadata, error) {
	key, err := data.Normalize(path)
	if err != nil {
		return nil, staticfs.NotFound(path)
	}

	// The root always exists, even for an empty store.
	if key == "" {
		return staticfs.NewStatMetadata(&data.FileStat{Key: "", IsDir: true}), nil
	}

	pb.mu.RLock()
	defer pb.mu.RUnlock()

	stat, exists := pb.keys.Get(key)
	if !exists {
		return nil, staticfs.NotFound(path)
	}

	return staticfs.NewStatMetadata(stat.Clone()), nil
}

// Populate mirrors an index tree into the database, replacing entries that
// share a key. Provisioning is the only write path; served handles stay
// read-only.
func (pb *Backend) Populate(ctx context.Context, tree *index.Tree) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	tx, err := pb.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

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

		_, scanErr = tx.Exec(ctx, `
			INSERT INTO static_objects (key, is_dir, size, modify_time, content_type, content)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (key) DO UPDATE SET
				is_dir = EXCLUDED.is_dir,
				size = EXCLUDED.size,
				modify_time = EXCLUDED.modify_time,
				content_type = EXCLUDED.content_type,
				content = EXCLUDED.content
		`, stat.Key, stat.IsDir, stat.Size, modifyUnix, string(stat.ContentType), content)

		return scanErr == nil
	})
	if scanErr != nil {
		return scanErr
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	tree.Scan(func(entry index.Entry) bool {
		stat := entry.Stat()
		pb.keys.Set(stat.Key, stat)
		return true
	})

	return nil
}
