package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "out.tsv")

	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !FileExists(filepath.Join(root, "a", "b")) {
		t.Fatalf("expected parent directory to exist")
	}

	// A bare file name has nothing to create.
	if err := EnsureParentDir("out.tsv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureDirFailsUnderFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := EnsureDir(filepath.Join(blocker, "sub")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("unexpected contents %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temporary files left, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.tsv")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Fatalf("expected error")
	}
}
