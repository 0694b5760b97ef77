package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for rendered files.
const DefaultFileMode os.FileMode = 0o644

// DefaultDirMode is the permission mode for directories created for outputs.
const DefaultDirMode os.FileMode = 0o755

// WriteAtomic replaces path with content. The content goes to a synced temp
// file in the target directory, which is then renamed over path, so readers
// see either the old or the new output and never a truncated one. Missing
// parent directories are created. If mode is 0, DefaultFileMode is used.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmpPath, err := writeTemp(dir, "."+filepath.Base(path)+".tmp.*", content, mode)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// writeTemp writes content to a new temp file in dir and returns its path.
// The file is removed again on any error.
func writeTemp(dir, pattern string, content []byte, mode os.FileMode) (path string, err error) {
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}

	return tmp.Name(), nil
}

// WriteAtomicIfChanged writes content with WriteAtomic unless path already
// holds exactly that content, leaving the modification time of unchanged
// outputs alone. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, _, err := ReadFile(ctx, path)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			return false, nil
		}
	case errors.Is(err, ErrNotFound):
		// First render of this output.
	default:
		return false, err
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
