package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "hands.txt")
	want := []byte("PokerStars Hand #1: ...")

	if err := WriteFileAtomic(path, want, 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("content mismatch: got %q, want %q", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("permissions: got %o, want %o", info.Mode().Perm(), 0644)
	}

	// No temp files should survive a successful write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "hands.txt" {
			t.Errorf("leftover file: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hands.txt")

	if err := WriteFileAtomic(path, []byte("first run"), 0644); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second run"), 0644); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "second run" {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	if err := WriteFileAtomic("/nonexistent/dir/hands.txt", []byte("x"), 0644); err == nil {
		t.Error("expected error for missing directory")
	}
}
