package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoPath indicates a save was requested for a document without a path.
	ErrNoPath = errors.New("document has no path")

	// ErrUnsavedChanges indicates there are unsaved changes.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrUnknownCommand indicates a command name that is not recognized.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrQuit is returned by Execute for the quit command.
	ErrQuit = errors.New("quit requested")

	// ErrClosed indicates use of a closed session.
	ErrClosed = errors.New("session closed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save", "open", "reload")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
