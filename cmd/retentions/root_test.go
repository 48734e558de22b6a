package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raoulx24/retentions/internal/apperr"
)

func writeAgedFile(t *testing.T, path string, age time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Chtimes(path, age, age); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
}

func TestRootCmdRunsPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeAgedFile(t, filepath.Join(dir, "new.tar"), now)
	writeAgedFile(t, filepath.Join(dir, "old.tar"), now.AddDate(0, 0, -30))

	cmd := newRootCmd()
	cmd.SetArgs([]string{dir, "*.tar", "--days", "1", "--no-lock-file"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old.tar")); !os.IsNotExist(err) {
		t.Fatal("old.tar should have been pruned")
	}
}

func TestRootCmdListOnlyWritesToCommandStdout(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeAgedFile(t, filepath.Join(dir, "new.tar"), now)
	writeAgedFile(t, filepath.Join(dir, "old.tar"), now.AddDate(0, 0, -30))

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetArgs([]string{dir, "*.tar", "--days", "1", "--no-lock-file", "--list-only"})
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if stdout.Len() == 0 {
		t.Fatal("expected the pruned path on the command's stdout")
	}
	if _, err := os.Stat(filepath.Join(dir, "old.tar")); err != nil {
		t.Fatal("--list-only must not delete")
	}
}

func TestRootCmdRejectsMissingRetentionRule(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{dir, "*.tar"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when no retention rule is configured")
	}
	if apperr.ExitCode(err) != 2 {
		t.Fatalf("ExitCode = %d, want 2 (config)", apperr.ExitCode(err))
	}
}

func TestRootCmdRejectsWrongArgCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"only-one-arg"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for the wrong number of positional arguments")
	}
}

func TestSuggestOnUnknownFlagProducesDidYouMean(t *testing.T) {
	cmd := newRootCmd()
	err := suggestOnUnknownFlag(cmd, errors.New("unknown flag: --dry-ru"))
	if err == nil {
		t.Fatal("expected a wrapped error")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected an *apperr.Error, got %T", err)
	}
	if ae.Category.ExitCode() != 2 {
		t.Fatalf("ExitCode = %d, want 2", ae.Category.ExitCode())
	}
	if !strings.Contains(err.Error(), "did you mean --dry-run?") {
		t.Fatalf("error = %q, want a did-you-mean suggestion for --dry-run", err.Error())
	}
}

func TestSuggestOnUnknownFlagPassesThroughUnrecognizedErrorShape(t *testing.T) {
	cmd := newRootCmd()
	err := suggestOnUnknownFlag(cmd, errors.New("some other pflag error"))
	if err == nil {
		t.Fatal("expected a non-nil wrapped error")
	}
}
