package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/cvrender/pkg/tmpltype"
)

// Discover lists the templates directly inside dir. A template is a visible
// regular file that either has a known type or carries a template suffix.
// The result is sorted and holds absolute paths.
func Discover(ctx context.Context, dir string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
	default:
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("read templates directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if IsTemplate(entry.Name()) {
			files = append(files, filepath.Join(absDir, entry.Name()))
		}
	}

	sort.Strings(files)

	return files, nil
}

// IsTemplate reports whether a file name looks like a resume template.
func IsTemplate(name string) bool {
	if tmpltype.Detect(name).Known() {
		return true
	}
	return OutputName(name) != name
}

// OutputName derives the rendered file name from a template name by
// dropping a trailing template suffix: "cv.tex.j2" becomes "cv.tex".
func OutputName(templateName string) string {
	base := filepath.Base(templateName)
	for _, suffix := range TemplateSuffixes() {
		if trimmed, ok := strings.CutSuffix(base, suffix); ok && trimmed != "" {
			return trimmed
		}
	}
	return base
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// resolve makes path absolute relative to workDir.
func resolve(workDir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return filepath.Clean(path)
}
