package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotebox/internal/domain"
)

// Exit codes for the quotes command.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general failure such as a storage error.
	ExitError = 1

	// ExitUsage indicates missing or blank arguments.
	ExitUsage = 2

	// ExitNotFound indicates there was nothing to show.
	ExitNotFound = 3

	// ExitDataErr indicates an import file that could not be used.
	ExitDataErr = 4
)

// ErrUsage marks argument errors reported by cobra.
var ErrUsage = errors.New("usage error")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), domain.IsValidation(err):
		return ExitUsage
	case domain.IsNotFound(err):
		return ExitNotFound
	case domain.IsInvalidFormat(err), domain.IsParseFailure(err):
		return ExitDataErr
	default:
		return ExitError
	}
}

// usageArgs wraps a cobra argument validator so its failures map to ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Join(ErrUsage, err)
		}

		return nil
	}
}
