package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFSStatAndLstat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tar")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fsys := New()
	info, err := fsys.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != 4 || info.IsDir || info.IsLink || !info.Regular {
		t.Fatalf("info = %+v", info)
	}

	linfo, err := fsys.Lstat(path)
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if linfo.IsLink {
		t.Fatal("a regular file should not be reported as a symlink")
	}
}

func TestOSFSLstatDetectsSymlink(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.tar")
	if err := os.WriteFile(real, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	link := filepath.Join(dir, "link.tar")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fsys := New()
	linfo, err := fsys.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if !linfo.IsLink {
		t.Fatal("Lstat should report the symlink itself, not its target")
	}
}

func TestOSFSRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tar")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fsys := New()
	if err := fsys.Remove(context.Background(), path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file should be gone after Remove")
	}
}

func TestOSFSRemoveNonexistentIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	fsys := New()
	if err := fsys.Remove(context.Background(), filepath.Join(dir, "never-existed")); err != nil {
		t.Fatalf("Remove of a nonexistent file should succeed (already-gone state), got %v", err)
	}
}

func TestOSFSMkdirAllAndRemoveAll(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	fsys := New()
	if err := fsys.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if _, err := os.Stat(nested); err != nil {
		t.Fatalf("nested dir should exist: %v", err)
	}
	if err := fsys.RemoveAll(filepath.Join(dir, "a")); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if _, err := os.Stat(nested); !os.IsNotExist(err) {
		t.Fatal("nested dir should be gone after RemoveAll")
	}
}
