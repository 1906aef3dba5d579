package circulation

import (
	"errors"
	"fmt"
)

// Base errors for the lifecycle taxonomy. Specific failures wrap one of
// these, so presentation layers classify with errors.Is and translate to
// status codes or exit codes themselves.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means the operation violates a lifecycle precondition.
	ErrInvalidState = errors.New("invalid state")
)

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func invalidState(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidState)
}
