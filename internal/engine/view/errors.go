package view

import "errors"

// ErrUnknownMovement is returned when a movement name cannot be parsed.
var ErrUnknownMovement = errors.New("unknown movement")
