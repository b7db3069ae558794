package errs

import (
	"errors"
	"fmt"
)

var ErrTransient = errors.New("transient failure")

// TransientError wraps a storage or transaction failure that may succeed on retry,
// such as a serialization failure or a dropped connection.
type TransientError struct {
	Cause error
}

func NewTransientError(cause error) *TransientError {
	return &TransientError{Cause: cause}
}

func (e *TransientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrTransient, e.Cause)
	}
	return ErrTransient.Error()
}

func (e *TransientError) Unwrap() error {
	return ErrTransient
}
