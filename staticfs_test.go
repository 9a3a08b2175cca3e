package staticfs_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/backend/embedded"
	"github.com/mwantia/staticfs/backend/local"
	"github.com/mwantia/staticfs/backend/sqlite"
	"github.com/mwantia/staticfs/index"
)

func buildTestTree(t *testing.T) *index.Tree {
	builder := index.NewBuilder()
	builder.AddFile("hello.txt", []byte("hello world"), time.Time{})
	builder.AddFile("images/logo.png", []byte{0x89, 0x50, 0x4e, 0x47}, time.Unix(1700000000, 0))
	builder.AddFile("assets/app.css", []byte("body { margin: 0; }"), time.Time{})

	tree, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return tree
}

// factory returns a fresh backend and whether it needs Populate before serving.
type factory func(t *testing.T) (staticfs.Backend, bool)

var backends = map[string]factory{
	"embedded": func(t *testing.T) (staticfs.Backend, bool) {
		return embedded.New(buildTestTree(t)), false
	},
	"local": func(t *testing.T) (staticfs.Backend, bool) {
		root := t.TempDir()

		tree := buildTestTree(t)
		tree.Scan(func(entry index.Entry) bool {
			target := filepath.Join(root, filepath.FromSlash(entry.Path()))

			if entry.IsDir() {
				if err := os.MkdirAll(target, 0755); err != nil {
					t.Fatalf("failed to seed %s: %v", entry.Path(), err)
				}
				return true
			}

			file := entry.(*index.File)
			if err := os.WriteFile(target, file.Contents(), 0644); err != nil {
				t.Fatalf("failed to seed %s: %v", entry.Path(), err)
			}

			return true
		})

		return local.New(root), false
	},
	"sqlite": func(t *testing.T) (staticfs.Backend, bool) {
		backend, err := sqlite.New(":memory:")
		if err != nil {
			t.Fatalf("sqlite.New failed: %v", err)
		}

		return backend, true
	},
}

func setupStore(t *testing.T, create factory, opts ...staticfs.Option) *staticfs.Store {
	ctx := context.Background()

	backend, needsPopulate := create(t)
	store := staticfs.New(backend, opts...)

	if err := store.Open(ctx); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close(ctx, true) })

	if needsPopulate {
		if err := store.Populate(ctx, buildTestTree(t)); err != nil {
			t.Fatalf("Populate failed: %v", err)
		}
	}

	return store
}

func TestStore_OpenRead(t *testing.T) {
	for name, create := range backends {
		t.Run(name, func(t *testing.T) {
			store := setupStore(t, create)

			file, err := store.OpenFile(context.Background(), "hello.txt")
			if err != nil {
				t.Fatalf("OpenFile failed: %v", err)
			}
			defer file.Close()

			got, err := io.ReadAll(file)
			if err != nil || string(got) != "hello world" {
				t.Fatalf("expected 'hello world', got %q (%v)", got, err)
			}

			if pos, err := file.Seek(6, io.SeekStart); err != nil || pos != 6 {
				t.Fatalf("expected position 6, got %d (%v)", pos, err)
			}

			got, err = io.ReadAll(file)
			if err != nil || string(got) != "world" {
				t.Fatalf("expected 'world', got %q (%v)", got, err)
			}

			if pos, err := file.Seek(-5, io.SeekEnd); err != nil || pos != 6 {
				t.Fatalf("expected position 6 from end, got %d (%v)", pos, err)
			}

			if got, err := io.ReadAll(file); err != nil || string(got) != "world" {
				t.Fatalf("expected 'world' from end seek, got %q (%v)", got, err)
			}

			if n, err := file.Read(make([]byte, 4)); n != 0 || err != io.EOF {
				t.Errorf("expected (0, EOF) at end, got (%d, %v)", n, err)
			}
		})
	}
}

func TestStore_StatContract(t *testing.T) {
	for name, create := range backends {
		t.Run(name, func(t *testing.T) {
			store := setupStore(t, create)
			ctx := context.Background()

			meta, err := store.Stat(ctx, "hello.txt")
			if err != nil {
				t.Fatalf("Stat failed: %v", err)
			}
			if meta.IsDir() || meta.Size() != 11 {
				t.Errorf("unexpected file metadata: dir=%v size=%d", meta.IsDir(), meta.Size())
			}

			dirMeta, err := store.Stat(ctx, "images")
			if err != nil {
				t.Fatalf("Stat directory failed: %v", err)
			}
			if !dirMeta.IsDir() || dirMeta.Size() != 0 {
				t.Errorf("unexpected directory metadata: dir=%v size=%d", dirMeta.IsDir(), dirMeta.Size())
			}
			if _, err := dirMeta.Modified(); !errors.Is(err, staticfs.ErrNotExist) {
				t.Errorf("expected ErrNotExist for directory timestamp, got %v", err)
			}

			if _, err := store.Stat(ctx, "missing.txt"); !errors.Is(err, staticfs.ErrNotExist) {
				t.Errorf("expected ErrNotExist, got %v", err)
			}

			// Directories cannot be opened as files
			if _, err := store.OpenFile(ctx, "images"); !errors.Is(err, staticfs.ErrNotExist) {
				t.Errorf("expected ErrNotExist for directory open, got %v", err)
			}
		})
	}
}

func TestStore_InvalidPath(t *testing.T) {
	for name, create := range backends {
		t.Run(name, func(t *testing.T) {
			store := setupStore(t, create)
			ctx := context.Background()

			// Escaping paths fail like any other miss, on every variant
			if _, err := store.OpenFile(ctx, "../escape.txt"); !errors.Is(err, staticfs.ErrNotExist) {
				t.Errorf("expected ErrNotExist for escaping open, got %v", err)
			}

			if _, err := store.Stat(ctx, "../escape.txt"); !errors.Is(err, staticfs.ErrNotExist) {
				t.Errorf("expected ErrNotExist for escaping stat, got %v", err)
			}
		})
	}
}

func TestStore_SeekErrors(t *testing.T) {
	for name, create := range backends {
		t.Run(name, func(t *testing.T) {
			store := setupStore(t, create)

			file, err := store.OpenFile(context.Background(), "hello.txt")
			if err != nil {
				t.Fatalf("OpenFile failed: %v", err)
			}
			defer file.Close()

			if _, err := file.Seek(-1, io.SeekStart); !errors.Is(err, staticfs.ErrInvalidSeek) {
				t.Errorf("expected ErrInvalidSeek, got %v", err)
			}

			if _, err := file.Seek(-12, io.SeekEnd); !errors.Is(err, staticfs.ErrInvalidSeek) {
				t.Errorf("expected ErrInvalidSeek from end, got %v", err)
			}
		})
	}
}

func TestStore_TrackedHandles(t *testing.T) {
	store := setupStore(t, backends["embedded"])
	ctx := context.Background()

	file, err := store.OpenFile(ctx, "hello.txt")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if store.Handles() != 1 {
		t.Fatalf("expected 1 open handle, got %d", store.Handles())
	}

	if err := store.Close(ctx, false); !errors.Is(err, staticfs.ErrBusy) {
		t.Fatalf("expected ErrBusy with open handles, got %v", err)
	}

	if err := file.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if store.Handles() != 0 {
		t.Fatalf("expected 0 open handles, got %d", store.Handles())
	}

	if err := file.Close(); !errors.Is(err, staticfs.ErrClosed) {
		t.Errorf("expected ErrClosed on double close, got %v", err)
	}

	if err := store.Close(ctx, false); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStore_ForceClose(t *testing.T) {
	store := setupStore(t, backends["embedded"])
	ctx := context.Background()

	file, err := store.OpenFile(ctx, "hello.txt")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	// A forced close must finish even though each tracked handle re-enters
	// the store to release itself.
	done := make(chan error, 1)
	go func() { done <- store.Close(ctx, true) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("forced Close failed: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("forced Close did not return with an open handle")
	}

	if store.Handles() != 0 {
		t.Errorf("expected 0 open handles after forced close, got %d", store.Handles())
	}

	if err := file.Close(); !errors.Is(err, staticfs.ErrClosed) {
		t.Errorf("expected ErrClosed after forced close, got %v", err)
	}
}

func TestStore_PathRewrite(t *testing.T) {
	rewrite := func(path string) string {
		if path == "/" {
			return "hello.txt"
		}
		return path
	}

	store := setupStore(t, backends["embedded"], staticfs.WithPathRewrite(rewrite))

	file, err := store.OpenFile(context.Background(), "/")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer file.Close()

	got, err := io.ReadAll(file)
	if err != nil || string(got) != "hello world" {
		t.Errorf("expected 'hello world', got %q (%v)", got, err)
	}

	meta, err := store.Stat(context.Background(), "/")
	if err != nil || meta.IsDir() {
		t.Errorf("rewrite not applied to Stat: %v", err)
	}
}

func TestStore_Populate_Unsupported(t *testing.T) {
	store := setupStore(t, backends["embedded"])

	if err := store.Populate(context.Background(), buildTestTree(t)); !errors.Is(err, staticfs.ErrBackendUnsupported) {
		t.Errorf("expected ErrBackendUnsupported, got %v", err)
	}
}
