package taskerrors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// PanicError wraps a recovered panic from a command handler so that callers
// receive an error with the originating stack instead of a crash.
type PanicError struct {
	message    string
	stacktrace string
}

func (pe *PanicError) Error() string {
	return pe.message
}

func (pe *PanicError) Stacktrace() string {
	return pe.stacktrace
}

// NewPanicError captures the current stack for the given recovered value.
func NewPanicError(recovered any) *PanicError {
	goerr := goerrors.Wrap(recovered, 2)

	return &PanicError{
		message:    fmt.Sprintf("panic: %v", recovered),
		stacktrace: string(goerr.Stack()),
	}
}
