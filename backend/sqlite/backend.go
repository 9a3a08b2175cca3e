// Package sqlite serves static content out of a single-file SQLite database.
// The database is provisioned once via Populate and treated as read-only
// afterwards; a B-tree key index loaded at Open answers lookups without
// touching the database.
package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
	"github.com/tidwall/btree"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Backend provides static content from SQLite with two layers:
//
// Layer 1: In-memory B-tree for fast key lookups (keys map)
// Layer 2: SQLite table (static_objects) for metadata and content
type Backend struct {
	mu sync.RWMutex
	db *sql.DB

	// In-memory B-tree for fast key lookups
	keys *btree.Map[string, *data.FileStat]
}

// New creates a SQLite-backed static content backend.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func New(dbPath string) (*Backend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	backend := &Backend{
		db:   db,
		keys: btree.NewMap[string, *data.FileStat](0),
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// initSchema creates the database schema.
func (sb *Backend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS static_objects (
		key TEXT PRIMARY KEY,
		is_dir INTEGER NOT NULL DEFAULT 0,
		size INTEGER NOT NULL DEFAULT 0,
		modify_time INTEGER NOT NULL DEFAULT 0,
		content_type TEXT,
		content BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_static_objects_key ON static_objects(key);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Name returns the identifier name defined for this backend.
func (*Backend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
// It verifies the connection and loads all keys into the in-memory B-tree.
func (sb *Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if err := sb.db.PingContext(ctx); err != nil {
		return err
	}

	rows, err := sb.db.QueryContext(ctx,
		"SELECT key, is_dir, size, modify_time, content_type FROM static_objects")
	if err != nil {
		return err
	}
	defer rows.Close()

	sb.keys.Clear()
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return err
		}

		sb.keys.Set(stat.Key, stat)
	}

	return rows.Err()
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *Backend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.keys.Clear()

	return sb.db.Close()
}

// Capabilities returns the set of capabilities supported by this backend.
func (sb *Backend) Capabilities() *staticfs.Capabilities {
	return &staticfs.Capabilities{
		Capabilities: []staticfs.Capability{
			staticfs.CapabilityModTime,
			staticfs.CapabilityContentType,
			staticfs.CapabilityPopulate,
		},
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStat(row rowScanner) (*data.FileStat, error) {
	var (
		stat        data.FileStat
		isDir       int
		modifyUnix  int64
		contentType sql.NullString
	)

	if err := row.Scan(&stat.Key, &isDir, &stat.Size, &modifyUnix, &contentType); err != nil {
		return nil, err
	}

	stat.IsDir = isDir != 0
	if modifyUnix != 0 {
		stat.ModifyTime = time.Unix(modifyUnix, 0)
	}
	if contentType.Valid {
		stat.ContentType = data.ContentType(contentType.String)
	}

	return &stat, nil
}
