package response

import (
	"errors"
	"fmt"
)

// ErrorResponse is the JSON body sent for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// IsServerError reports whether the error maps to a 5xx status.
func (e *Error) IsServerError() bool {
	return e.Code >= 500
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// Wrap attaches cause to a sentinel created by NewError so that both errors.Is
// on the sentinel and errors.As to *Error keep working.
func Wrap(sentinel error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
