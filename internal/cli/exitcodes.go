package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/blocksel/pkg/blockerr"
	"github.com/yaklabco/blocksel/pkg/rect"
)

// Exit codes for blocksel.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the operation could not be carried out, such as
	// an offset outside a block or an unknown block id.
	ExitFailure = 1

	// ExitMalformedDocument indicates a structural defect in the document tree.
	ExitMalformedDocument = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage is matched by errors caused by invalid arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig is matched by configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfig, err)
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, blockerr.ErrCycle):
		return ExitMalformedDocument
	case errors.Is(err, blockerr.ErrPrecondition), errors.Is(err, rect.ErrNoRects):
		return ExitFailure
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
