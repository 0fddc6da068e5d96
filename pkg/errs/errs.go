package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup miss for an aggregate the caller addressed
// directly. The HTTP layer maps it to 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks caller-correctable bad input (unparseable date,
// unknown status name, unresolvable combo reference). Maps to 400.
var ErrInvalidInput = errors.New("invalid input")

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
