package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/cvrender/internal/configloader"
	"github.com/yaklabco/cvrender/pkg/fsutil"
	"github.com/yaklabco/cvrender/pkg/resume"
	"github.com/yaklabco/cvrender/pkg/runner"
)

// Exit codes for cvrender.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a failed render or an unclassified error.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitDataError indicates resume data that cannot be read or validated.
	ExitDataError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrInvalidUsage is returned for bad flags and arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig is returned when the configuration cannot be loaded.
	ErrConfig = errors.New("configuration error")

	// ErrRenderFailed is returned when at least one template failed.
	ErrRenderFailed = errors.New("render failed")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, runner.ErrInvalidPlan):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, resume.ErrInvalidData), errors.Is(err, resume.ErrReadData):
		return ExitDataError
	case errors.Is(err, ErrRenderFailed):
		return ExitFailure
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitFailure
	}
}
