package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// Exists reports whether anything exists at path. Paths that cannot be
// inspected, such as one below a regular file, do not exist.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// NearestExistingAncestor walks up from path (exclusive) and returns the
// first ancestor that exists.
func NearestExistingAncestor(path string) string {
	dir := filepath.Dir(filepath.Clean(path))
	for !Exists(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return dir
}

// IsWithin reports whether path is dir or lies below it.
// Both paths are cleaned; no symlinks are resolved.
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
