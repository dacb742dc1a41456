package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Exit codes for mdlstyle.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitStyleErrors indicates check found errors, or a command failed.
	ExitStyleErrors = 1

	// ExitStyleWarnings indicates check found warnings (when strict mode).
	ExitStyleWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a style, mdlrc or markdownlint file could not be used.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrStyleInvalid is returned by check when the style has errors.
	ErrStyleInvalid = errors.New("style has errors")

	// ErrStyleWarnings is returned by check --strict when the style has warnings.
	ErrStyleWarnings = errors.New("style has warnings")

	// ErrInvalidUsage wraps errors caused by bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")
)

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidUsage, fmt.Sprintf(format, args...))
}

// ExitCodeFromValidation determines the exit code of a check.
func ExitCodeFromValidation(result *configloader.ValidationResult, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if !result.Valid() {
		return ExitStyleErrors
	}
	if strict && result.HasWarnings() {
		return ExitStyleWarnings
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var parseErr *style.ParseError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrStyleWarnings):
		return ExitStyleWarnings
	case errors.Is(err, ErrStyleInvalid):
		return ExitStyleErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &parseErr), ruleset.IsUnknown(err), errors.Is(err, rules.ErrInvalidParams):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitStyleErrors
	}
}

// IsReported reports whether err only signals an outcome the command
// already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrStyleInvalid) || errors.Is(err, ErrStyleWarnings)
}
