package engine

import (
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/view"
)

// Default configuration values.
const (
	DefaultTabWidth = 4
	DefaultHeight   = view.DefaultHeight
)

// Logger is the logging the engine needs. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding sets the line ending style for the engine.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
		e.detectEnding = false
	}
}

// WithDetectedLineEnding picks the line ending from the initial content.
func WithDetectedLineEnding() Option {
	return func(e *Engine) {
		e.detectEnding = true
	}
}

// WithHeight sets the viewport height used by page movements.
func WithHeight(lines int) Option {
	return func(e *Engine) {
		if lines > 0 {
			e.height = lines
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger sets the logger used for debug tracing of commands.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithObserver registers an observer of selection and content changes.
// Observers are called with the engine lock held and must not call back
// into the engine.
func WithObserver(o view.Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}
