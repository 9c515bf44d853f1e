package cli

import (
	"errors"

	"github.com/yaklabco/gosfc/pkg/runner"
)

// Exit codes for gosfc.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates a check completed but found diagnostics.
	ExitIssues = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrIssuesFound is returned when a check finds diagnostics.
	ErrIssuesFound = errors.New("issues found")

	// ErrUnreadableFiles is returned when some files could not be read.
	ErrUnreadableFiles = errors.New("some files could not be read")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage marks invalid arguments or flag combinations.
	ErrUsage = errors.New("invalid usage")

	// ErrIO marks failures reading or writing the target file.
	ErrIO = errors.New("file operation failed")
)

// ExitCodeFromResult determines the exit code for a check run.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors():
		return ExitIOError
	case result.HasIssues():
		return ExitIssues
	default:
		return ExitSuccess
	}
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitIssues
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnreadableFiles), errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err is only an exit-code signal that needs no
// log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrIssuesFound)
}
