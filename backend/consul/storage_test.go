package consul

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/staticfs"
	"github.com/mwantia/staticfs/data"
)

func encodePair(t *testing.T, key string, obj *envelope) *api.KVPair {
	value, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("failed to encode envelope: %v", err)
	}

	return &api.KVPair{Key: key, Value: value}
}

func TestFileFromPair(t *testing.T) {
	pair := encodePair(t, "staticfs/hello.txt", &envelope{
		Stat:    &data.FileStat{Key: "hello.txt", Size: 11},
		Content: []byte("hello world"),
	})

	file, err := fileFromPair("hello.txt", pair)
	if err != nil {
		t.Fatalf("fileFromPair failed: %v", err)
	}
	defer file.Close()

	got, err := io.ReadAll(file)
	if err != nil || string(got) != "hello world" {
		t.Fatalf("expected 'hello world', got %q (%v)", got, err)
	}
}

func TestFileFromPair_Directory(t *testing.T) {
	pair := encodePair(t, "staticfs/images", &envelope{
		Stat: &data.FileStat{Key: "images", IsDir: true},
	})

	// A directory envelope must never be served as a file
	if _, err := fileFromPair("images", pair); !errors.Is(err, staticfs.ErrNotExist) {
		t.Errorf("expected ErrNotExist for directory envelope, got %v", err)
	}
}

func TestFileFromPair_Corrupt(t *testing.T) {
	if _, err := fileFromPair("x", &api.KVPair{Key: "staticfs/x", Value: []byte("{")}); err == nil {
		t.Error("expected error for corrupt envelope")
	}

	if _, err := fileFromPair("x", &api.KVPair{Key: "staticfs/x", Value: []byte("{}")}); err == nil {
		t.Error("expected error for missing stat")
	}
}

func TestBuildKey(t *testing.T) {
	backend, err := New(&Config{Prefix: "staticfs"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cases := map[string]string{
		"":                "staticfs",
		"hello.txt":       "staticfs/hello.txt",
		"images/logo.png": "staticfs/images/logo.png",
	}

	for key, expected := range cases {
		if built := backend.buildKey(key); built != expected {
			t.Errorf("buildKey(%q): expected %q, got %q", key, expected, built)
		}
	}
}
