package checksum

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSumIsStable(t *testing.T) {
	a := Sum([]byte("body{}"))
	b := Sum([]byte("body{}"))
	if a != b {
		t.Errorf("same input, different digests: %s vs %s", a, b)
	}
	if a == Sum([]byte("body{color:red}")) {
		t.Error("different inputs should not collide")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.css")
	if err := os.WriteFile(path, []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != Sum([]byte("body{}")) {
		t.Errorf("File digest does not match Sum")
	}
}

func TestFileMissingIsNotExist(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.css"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}
