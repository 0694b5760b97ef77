package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yaklabco/cvrender/pkg/fsutil"
)

// appName names the system and user configuration directories.
const appName = "cvrender"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/cvrender/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/cvrender/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.cvrender.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// DotEnv is the .env file next to the working directory, if any.
	DotEnv string
}

// userConfigFiles are looked up in the system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var userConfigFiles = []string{"config.yaml", "config.yml"}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".cvrender.yml",
	".cvrender.yaml",
	"cvrender.yml",
	"cvrender.yaml",
}

// ProjectConfigFile is the file name written by `cvrender init`.
func ProjectConfigFile() string {
	return projectConfigFiles[0]
}

// dotEnvFile is loaded from the working directory before environment overrides.
const dotEnvFile = ".env"

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations.
// It searches for:
//   - System config at /etc/cvrender/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/cvrender/config.{yaml,yml}
//   - Project config by searching upward from workDir for .cvrender.{yml,yaml}
//   - A .env file in workDir
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{
		System: findSystemConfig(),
		User:   findUserConfig(),
	}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig

	if envPath := filepath.Join(workDir, dotEnvFile); fsutil.IsFile(envPath) {
		paths.DotEnv = envPath
	}

	return paths, nil
}

// findSystemConfig returns the path to the system-wide config file, if it exists.
func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return firstFile(filepath.Join(programData, appName), userConfigFiles)
	}

	return firstFile(filepath.Join("/etc", appName), userConfigFiles)
}

// findUserConfig returns the path to the user-level config file, if it exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return firstFile(filepath.Join(configHome, appName), userConfigFiles)
}

// firstFile returns the first of names that is a regular file in dir, or "".
func firstFile(dir string, names []string) string {
	for _, name := range names {
		if path := filepath.Join(dir, name); fsutil.IsFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// Without a home directory there is no home boundary.
	homeDir, _ := os.UserHomeDir()

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if path := firstFile(currentDir, projectConfigFiles); path != "" {
			return path, nil
		}

		parentDir := filepath.Dir(currentDir)
		if isVCSRoot(currentDir) || currentDir == homeDir || parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if fsutil.IsDir(filepath.Join(dir, marker)) {
			return true
		}
	}
	return false
}
