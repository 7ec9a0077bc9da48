package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCommand indicates the command name is empty or malformed
	ErrInvalidCommand = errors.New("invalid command")
	// ErrInvalidArgument indicates an argument could be read as an injected option or contains control characters
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMaxBuffer indicates the process wrote more to stdout than the configured limit
	ErrMaxBuffer = errors.New("stdout maxBuffer exceeded")
	// ErrTimeout indicates the process was killed after its timeout elapsed
	ErrTimeout = errors.New("command timed out")
	// ErrCommandFailed indicates the process exited with a non-zero code
	ErrCommandFailed = errors.New("command failed")
)

// ExitError carries the exit code and stderr of a failed process.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.Code, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return ErrCommandFailed
}
