// Package terminal is a full-screen front end for an editing session,
// drawn with tcell.
package terminal

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/app"
	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/input"
)

// UI runs a session on a terminal screen. The last line of the screen is a
// status line; the rest shows the document.
type UI struct {
	screen  tcell.Screen
	session *app.Session
	keys    *input.Keymap
	log     *app.Logger
	styles  Styles

	dirty   atomic.Bool
	status  string
	pasting bool
	paste   strings.Builder
}

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the logger.
func WithLogger(l *app.Logger) Option {
	return func(u *UI) {
		if l != nil {
			u.log = l
		}
	}
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(u *UI) {
		u.styles = s
	}
}

// New creates a UI. The screen is initialized by Init.
func New(screen tcell.Screen, s *app.Session, keys *input.Keymap, opts ...Option) *UI {
	u := &UI{
		screen:  screen,
		session: s,
		keys:    keys,
		log:     app.NullLogger,
		styles:  DefaultStyles(),
	}
	for _, opt := range opts {
		opt(u)
	}
	u.log = u.log.WithComponent("terminal")
	u.dirty.Store(true)
	s.Engine().AddObserver(u)
	return u
}

// Init initializes the screen and sizes the viewport to it.
func (u *UI) Init() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	u.screen.EnablePaste()
	u.screen.SetStyle(u.styles.Text)
	u.resize()
	return nil
}

// Close restores the terminal.
func (u *UI) Close() {
	u.screen.Fini()
}

// SelectionChanged marks the screen for redraw.
func (u *UI) SelectionChanged(firstLine, lastLine int) {
	u.invalidate()
}

// ContentChanged marks the screen for redraw.
func (u *UI) ContentChanged(engine.Change) {
	u.invalidate()
}

// invalidate wakes the event loop so changes made off the loop, such as a
// reload by the file watcher, are drawn.
func (u *UI) invalidate() {
	if !u.dirty.Swap(true) {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Run processes events until quit is executed or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.resize()
			u.screen.Sync()
			u.dirty.Store(true)

		case *tcell.EventPaste:
			if ev.Start() {
				u.pasting = true
				u.paste.Reset()
			} else {
				u.pasting = false
				if err := u.execute(app.Command{Op: app.OpWrite, Text: u.paste.String()}); err != nil {
					return nil
				}
			}

		case *tcell.EventKey:
			if u.pasting {
				u.collectPaste(ev)
				continue
			}
			cmd, ok := u.keys.Resolve(ev)
			if !ok {
				u.setStatus("unbound key " + input.FromEvent(ev).String())
				break
			}
			if err := u.execute(cmd); err != nil {
				return nil
			}

		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		if u.dirty.Swap(false) {
			u.draw()
		}
	}
}

// execute runs cmd and reports failures on the status line. It returns
// app.ErrQuit when the session should end.
func (u *UI) execute(cmd app.Command) error {
	err := u.session.Execute(cmd)
	switch {
	case errors.Is(err, app.ErrQuit):
		return err
	case err != nil:
		u.setStatus(err.Error())
	case cmd.Op == app.OpSave:
		u.setStatus("saved " + u.session.Document().Name())
	default:
		u.status = ""
	}
	return nil
}

func (u *UI) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		u.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		u.paste.WriteByte('\n')
	case tcell.KeyTab:
		u.paste.WriteByte('\t')
	}
}

func (u *UI) setStatus(msg string) {
	u.status = msg
	u.dirty.Store(true)
	u.log.Debug("%s", msg)
}

func (u *UI) resize() {
	_, h := u.screen.Size()
	u.session.Engine().SetHeight(max(h-1, 1))
}
