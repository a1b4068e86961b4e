package flatten

import (
	"errors"
	"fmt"
)

var (
	// ErrFirstLevelMustBeAnObject is returned when the root of a document is not an object.
	ErrFirstLevelMustBeAnObject = errors.New("first level must be an object")
	// ErrKeyWillBeOverwritten is matched by every KeyWillBeOverwrittenError.
	ErrKeyWillBeOverwritten = errors.New("key will be overwritten")
	// ErrMaxDepthExceeded is returned when a document is nested deeper than the configured limit.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
)

// KeyWillBeOverwrittenError is returned when two distinct locations of a
// document flatten to the same key.
type KeyWillBeOverwrittenError struct {
	Key string
}

// Error implements the error interface.
func (e *KeyWillBeOverwrittenError) Error() string {
	return fmt.Sprintf("key %q will be overwritten", e.Key)
}

// Is makes errors.Is(err, ErrKeyWillBeOverwritten) hold.
func (e *KeyWillBeOverwrittenError) Is(target error) bool {
	return target == ErrKeyWillBeOverwritten
}
