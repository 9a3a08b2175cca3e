package staticfs

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/staticfs/index"
	"github.com/mwantia/staticfs/log"
)

// Populator is implemented by stored backends that can be provisioned from an
// embedded index tree at deploy time. Serving stays read-only regardless.
type Populator interface {
	Populate(ctx context.Context, tree *index.Tree) error
}

// Store is the access point a static-content server consumes. It wraps one
// backend, tracks the handles it hands out and refuses to close while any
// remain open unless forced.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	logger  *log.Logger
	rewrite func(string) string
	handles map[string]File
}

// New creates a Store over the given backend. The backend is selected by the
// caller; the Store never cares which variant it is.
func New(backend Backend, opts ...Option) *Store {
	store := &Store{
		backend: backend,
		handles: make(map[string]File),
	}

	for _, opt := range opts {
		opt(store)
	}

	if store.logger == nil {
		store.logger = log.NewLogger("staticfs", log.Warn, "", false)
	}

	return store
}

// Backend returns the wrapped backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Open runs the backend's lifecycle initialization.
func (s *Store) Open(ctx context.Context) error {
	s.logger.Debug("opening backend '%s'", s.backend.Name())

	return s.backend.Open(ctx)
}

// Close shuts the backend down. With open handles it fails with ErrBusy
// unless force is set, in which case the remaining handles are closed first.
func (s *Store) Close(ctx context.Context, force bool) error {
	s.mu.Lock()
	if len(s.handles) > 0 && !force {
		s.mu.Unlock()
		return ErrBusy
	}

	// Snapshot and detach under the lock; handle.Close re-enters the Store
	// to release itself, so the actual closes must happen unlocked.
	remaining := make([]File, 0, len(s.handles))
	for id, handle := range s.handles {
		remaining = append(remaining, handle)
		delete(s.handles, id)
	}
	s.mu.Unlock()

	for _, handle := range remaining {
		handle.Close()
	}

	s.logger.Debug("closing backend '%s'", s.backend.Name())

	return s.backend.Close(ctx)
}

// OpenFile opens path on the backend and returns a tracked handle.
func (s *Store) OpenFile(ctx context.Context, path string) (File, error) {
	if s.rewrite != nil {
		path = s.rewrite(path)
	}

	file, err := s.backend.OpenFile(ctx, path)
	if err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	tracked := &trackedFile{
		File:  file,
		id:    id,
		store: s,
	}

	s.mu.Lock()
	s.handles[id] = tracked
	s.mu.Unlock()

	s.logger.Debug("opened '%s' on backend '%s' [%s]", path, s.backend.Name(), id)

	return tracked, nil
}

// Stat resolves path to a metadata snapshot on the backend.
func (s *Store) Stat(ctx context.Context, path string) (Metadata, error) {
	if s.rewrite != nil {
		path = s.rewrite(path)
	}

	return s.backend.Stat(ctx, path)
}

// Populate provisions the backend from an index tree. Backends without the
// populate capability fail with ErrBackendUnsupported.
func (s *Store) Populate(ctx context.Context, tree *index.Tree) error {
	populator, ok := s.backend.(Populator)
	if !ok {
		return ErrBackendUnsupported
	}

	s.logger.Info("populating backend '%s' with %d entries", s.backend.Name(), tree.Len())

	return populator.Populate(ctx, tree)
}

// Handles returns the number of currently open handles.
func (s *Store) Handles() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.handles)
}

func (s *Store) release(id string) {
	s.mu.Lock()
	delete(s.handles, id)
	s.mu.Unlock()
}

// trackedFile unregisters itself from the Store on Close. Like every handle
// it belongs to a single consumer, so the closed flag needs no lock.
type trackedFile struct {
	File
	id     string
	store  *Store
	closed bool
}

func (tf *trackedFile) Close() error {
	if tf.closed {
		return ErrClosed
	}

	tf.closed = true
	tf.store.release(tf.id)

	return tf.File.Close()
}
