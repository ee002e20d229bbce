package engine

import (
	"errors"

	"github.com/dshills/caret/internal/engine/view"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrUnknownMovement indicates a movement name that does not exist.
	ErrUnknownMovement = view.ErrUnknownMovement
)
