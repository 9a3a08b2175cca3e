package embedded

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/mwantia/staticfs"
)

func openTestFile(t *testing.T) staticfs.File {
	backend := New(buildTestTree(t))

	file, err := backend.OpenFile(context.Background(), "hello.txt")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return file
}

func position(t *testing.T, file staticfs.File) int64 {
	pos, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatalf("position query failed: %v", err)
	}

	return pos
}

func TestFile_ReadChunks(t *testing.T) {
	file := openTestFile(t)

	// Reads bounded by the buffer sum to the full content
	var got []byte
	buffer := make([]byte, 3)
	for {
		n, err := file.Read(buffer)
		got = append(got, buffer[:n]...)

		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}

	if string(got) != "hello world" {
		t.Errorf("expected 'hello world', got %q", got)
	}
}

func TestFile_SeekStart(t *testing.T) {
	content := "hello world"

	for offset := 0; offset <= len(content); offset++ {
		file := openTestFile(t)

		pos, err := file.Seek(int64(offset), io.SeekStart)
		if err != nil {
			t.Fatalf("Seek(%d) failed: %v", offset, err)
		}
		if pos != int64(offset) {
			t.Fatalf("expected position %d, got %d", offset, pos)
		}

		got, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}

		if string(got) != content[offset:] {
			t.Errorf("offset %d: expected %q, got %q", offset, content[offset:], got)
		}
	}
}

func TestFile_SeekPastEnd(t *testing.T) {
	file := openTestFile(t)

	// Seeking past the end is not an error
	pos, err := file.Seek(100, io.SeekStart)
	if err != nil || pos != 100 {
		t.Fatalf("expected position 100, got %d (%v)", pos, err)
	}

	if n, err := file.Read(make([]byte, 8)); n != 0 || err != io.EOF {
		t.Errorf("expected (0, EOF) past end, got (%d, %v)", n, err)
	}
}

func TestFile_SeekNegative(t *testing.T) {
	file := openTestFile(t)

	if _, err := file.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	if _, err := file.Seek(-1, io.SeekStart); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek, got %v", err)
	}

	// A failed seek leaves the cursor unchanged
	if pos := position(t, file); pos != 3 {
		t.Errorf("expected position 3 after failed seek, got %d", pos)
	}
}

func TestFile_SeekEnd(t *testing.T) {
	for k := 0; k <= 11; k++ {
		file := openTestFile(t)

		pos, err := file.Seek(int64(-k), io.SeekEnd)
		if err != nil {
			t.Fatalf("Seek(-%d, SeekEnd) failed: %v", k, err)
		}

		if pos != int64(11-k) {
			t.Errorf("expected position %d, got %d", 11-k, pos)
		}
	}

	file := openTestFile(t)
	if _, err := file.Seek(-12, io.SeekEnd); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek, got %v", err)
	}

	if _, err := file.Seek(-5, io.SeekEnd); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	got, err := io.ReadAll(file)
	if err != nil || string(got) != "world" {
		t.Errorf("expected 'world', got %q (%v)", got, err)
	}
}

func TestFile_SeekCurrent(t *testing.T) {
	file := openTestFile(t)

	if _, err := file.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	// +d then -d returns to the starting position
	for _, d := range []int64{1, 3, 7, 100} {
		if _, err := file.Seek(d, io.SeekCurrent); err != nil {
			t.Fatalf("Seek(+%d) failed: %v", d, err)
		}
		pos, err := file.Seek(-d, io.SeekCurrent)
		if err != nil {
			t.Fatalf("Seek(-%d) failed: %v", d, err)
		}
		if pos != 4 {
			t.Errorf("expected position 4, got %d", pos)
		}
	}

	if _, err := file.Seek(-5, io.SeekCurrent); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek for negative result, got %v", err)
	}
}

func TestFile_SeekOverflow(t *testing.T) {
	file := openTestFile(t)

	if _, err := file.Seek(math.MaxInt64, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	if _, err := file.Seek(1, io.SeekCurrent); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek on overflow, got %v", err)
	}

	if pos := position(t, file); pos != math.MaxInt64 {
		t.Errorf("expected cursor unchanged at MaxInt64, got %d", pos)
	}

	if _, err := file.Seek(math.MaxInt64, io.SeekEnd); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek on from-end overflow, got %v", err)
	}
}

func TestFile_InvalidWhence(t *testing.T) {
	file := openTestFile(t)

	if _, err := file.Seek(0, 42); !errors.Is(err, staticfs.ErrInvalidSeek) {
		t.Errorf("expected ErrInvalidSeek for unknown whence, got %v", err)
	}
}
