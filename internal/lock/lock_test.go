package lock

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	l, err := Acquire(dir, Metadata{PID: os.Getpid(), Start: time.Now(), RunID: "run-1"})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("lock file should exist: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Fatal("lock file should be removed after Release")
	}
}

func TestAcquireFailsWhenAlreadyHeld(t *testing.T) {
	dir := t.TempDir()
	l1, err := Acquire(dir, Metadata{PID: os.Getpid(), Start: time.Now()})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer l1.Release()

	if _, err := Acquire(dir, Metadata{PID: os.Getpid(), Start: time.Now()}); err == nil {
		t.Fatal("second Acquire should fail while the lock file is present")
	}
}

func TestReleaseIsSafeOnNilLock(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("Release on nil Lock should be a no-op, got %v", err)
	}
	if l.Path() != "" {
		t.Fatal("nil Lock should report an empty path")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	l, err := Acquire(dir, Metadata{PID: os.Getpid(), Start: time.Now()})
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("first Release: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("second Release should not error: %v", err)
	}
}
