package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/cvrender/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.tex")
		content := []byte("\\section{Experience}\n")

		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "resume.html")

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("<p>x</p>"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}
		if !fsutil.IsFile(path) {
			t.Errorf("expected %s to be a file", path)
		}
	})

	t.Run("overwrites existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "resume.txt")
		if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new content"), 0o644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new content" {
			t.Errorf("content = %q, want %q", got, "new content")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the target file, found %d entries", len(entries))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.txt")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if fsutil.Exists(path) {
			t.Error("file should not be created after cancellation")
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	t.Run("writes missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.tex")

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("a"), 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged() error = %v", err)
		}
		if !written {
			t.Error("expected file to be written")
		}
	})

	t.Run("skips identical content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.tex")
		if err := os.WriteFile(path, []byte("same"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("same"), 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged() error = %v", err)
		}
		if written {
			t.Error("expected unchanged file to be skipped")
		}
	})

	t.Run("writes different content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "resume.tex")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("new"), 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged() error = %v", err)
		}
		if !written {
			t.Error("expected file to be written")
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("rejects a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := fsutil.WriteAtomicIfChanged(context.Background(), dir, []byte("x"), 0)
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})
}
