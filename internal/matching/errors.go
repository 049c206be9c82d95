package matching

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel wrapped by InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a missing job or candidate.
type InvalidArgumentError struct {
	Argument string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s is required", e.Argument)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
