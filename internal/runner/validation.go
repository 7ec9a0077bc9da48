package runner

import (
	"fmt"
	"regexp"
	"strings"
)

// commandPattern allows plain executable names and paths, no shell syntax
var commandPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.+\\:-]+$`)

// validateCommand checks the executable name before it is handed to exec.
func validateCommand(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}

	if !commandPattern.MatchString(name) {
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidCommand, name)
	}

	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: cannot start with dash", ErrInvalidCommand)
	}

	return nil
}

// validateArgs rejects arguments carrying NUL bytes or line breaks.
func validateArgs(args []string) error {
	for i, arg := range args {
		if strings.ContainsAny(arg, "\x00\r\n") {
			return fmt.Errorf("%w: argument %d contains control characters", ErrInvalidArgument, i)
		}
	}
	return nil
}

// ValidateValue checks a caller supplied value before it is used as the
// argument of a command line flag, so it cannot be read as another flag.
func ValidateValue(name, value string) error {
	if value == "" {
		return nil
	}

	if strings.HasPrefix(value, "-") {
		return fmt.Errorf("%w: %s cannot start with dash", ErrInvalidArgument, name)
	}

	if strings.ContainsAny(value, "\x00\r\n") {
		return fmt.Errorf("%w: %s contains control characters", ErrInvalidArgument, name)
	}

	return nil
}
