package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/highlight"
	"github.com/dshills/caret/internal/script"
)

// Options configures a Session beyond what the config file holds.
type Options struct {
	// Path is the file to edit. Empty opens a scratch document.
	Path string

	// ReadOnly rejects edits regardless of the configuration.
	ReadOnly bool

	// Watch reloads the document when its file changes on disk.
	Watch bool

	// WatchDebounce overrides how long the watcher waits for writes to
	// settle. Zero keeps the watcher's default.
	WatchDebounce time.Duration

	// Logger receives session logs. Defaults to NullLogger.
	Logger *Logger

	// ScriptOutput receives print output from Lua scripts. Defaults to
	// os.Stderr.
	ScriptOutput io.Writer
}

// Session is one document being edited, with the services around it.
type Session struct {
	mu sync.Mutex

	cfg     *config.Config
	log     *Logger
	doc     *Document
	metrics *Metrics

	hlMu        sync.Mutex // serializes recoloring with watcher reloads
	highlighter *highlight.Highlighter
	script      *script.Runtime
	scriptOut   io.Writer
	watcher     *Watcher

	closed bool
}

// NewSession opens the document named by opts and starts its services in
// order: highlighting, the startup script, then the file watcher. A nil
// cfg means config.Default().
func NewSession(ctx context.Context, cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = NullLogger
	}
	out := opts.ScriptOutput
	if out == nil {
		out = os.Stderr
	}

	s := &Session{
		cfg:       cfg,
		log:       log,
		metrics:   NewMetrics(),
		scriptOut: out,
	}

	engineOpts := s.engineOptions(opts.ReadOnly)
	if opts.Path == "" {
		s.doc = NewScratchDocument(engineOpts...)
	} else {
		doc, err := OpenDocument(opts.Path, engineOpts...)
		if err != nil {
			return nil, err
		}
		s.doc = doc
	}
	log.Info("opened %s (%d bytes, %s)", s.doc.Name(), s.doc.Engine.Len(), s.doc.Encoding())

	if err := s.initHighlighter(); err != nil {
		return nil, err
	}
	s.rehighlight()

	if path := cfg.Script.Path; path != "" {
		rt := s.runtime()
		if err := rt.RunFile(ctx, path); err != nil {
			s.Close()
			return nil, NewOperationError("script", path, err)
		}
		s.rehighlight()
	}

	if opts.Watch && !s.doc.IsScratch() {
		watchOpts := []WatcherOption{WithReloadHook(func(err error) {
			if err == nil {
				s.rehighlight()
			}
		})}
		if opts.WatchDebounce > 0 {
			watchOpts = append(watchOpts, WithDebounce(opts.WatchDebounce))
		}
		w, err := NewWatcher(s.doc, log, watchOpts...)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.watcher = w
	}

	return s, nil
}

func (s *Session) engineOptions(readOnly bool) []engine.Option {
	ed := s.cfg.Editor
	opts := []engine.Option{
		engine.WithHeight(ed.PageHeight),
		engine.WithTabWidth(ed.TabWidth),
		engine.WithLogger(s.log.WithComponent("engine")),
	}
	if le, ok := s.cfg.LineEnding(); ok {
		opts = append(opts, engine.WithLineEnding(le))
	} else {
		opts = append(opts, engine.WithDetectedLineEnding())
	}
	if readOnly || ed.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	return opts
}

func (s *Session) initHighlighter() error {
	hc := s.cfg.Highlight
	if !hc.Enabled {
		return nil
	}

	var (
		h   *highlight.Highlighter
		err error
	)
	switch {
	case hc.Language != "":
		h, err = highlight.New(hc.Language, hc.Theme)
	case !s.doc.IsScratch():
		h, err = highlight.ForFile(s.doc.Name(), hc.Theme)
	default:
		return nil
	}
	if err != nil {
		return NewOperationError("highlight", s.doc.Name(), err)
	}
	s.highlighter = h
	s.log.Debug("highlighting as %s", h.Language())
	return nil
}

// rehighlight recolors the whole document. Failures leave the previous
// colors in place.
func (s *Session) rehighlight() {
	if s.highlighter == nil {
		return
	}
	s.hlMu.Lock()
	defer s.hlMu.Unlock()

	var err error
	s.doc.Engine.Colorize(func(b *buffer.Buffer) {
		err = s.highlighter.Apply(b)
	})
	if err != nil {
		s.log.Warn("highlight failed: %v", err)
	}
}

// runtime returns the Lua runtime, creating it on first use.
func (s *Session) runtime() *script.Runtime {
	if s.script == nil {
		s.script = script.New(s.doc.Engine,
			script.WithOutput(s.scriptOut),
			script.WithLogger(s.log.WithComponent("script")),
		)
	}
	return s.script
}

// Document returns the edited document.
func (s *Session) Document() *Document {
	return s.doc
}

// Engine returns the document's engine.
func (s *Session) Engine() *engine.Engine {
	return s.doc.Engine
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Metrics returns the command metrics.
func (s *Session) Metrics() *Metrics {
	return s.metrics
}

// Highlighter returns the active highlighter, or nil when highlighting is
// off.
func (s *Session) Highlighter() *highlight.Highlighter {
	return s.highlighter
}

// ExecuteLine parses and executes one command line.
func (s *Session) ExecuteLine(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return s.Execute(cmd)
}

// Execute runs cmd against the document. The quit command returns ErrQuit.
func (s *Session) Execute(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	err := s.execute(cmd)
	s.metrics.RecordCommand(cmd.Kind(), time.Since(start), err)

	switch {
	case errors.Is(err, ErrQuit):
		return err
	case err != nil:
		s.log.Warn("%s failed: %v", cmd, err)
		return err
	}

	if cmd.Kind() == KindEdit || cmd.Op == OpReload {
		s.rehighlight()
	}
	s.log.Debug("%s", cmd)
	return nil
}

func (s *Session) execute(cmd Command) error {
	e := s.doc.Engine
	var err error

	switch cmd.Op {
	case OpMove:
		e.Move(cmd.Movement, false)
	case OpSelect:
		e.Move(cmd.Movement, true)
	case OpCursor:
		e.SetCursor(engine.ByteOffset(cmd.Offset))
	case OpAddCursor:
		e.AddCursor(engine.ByteOffset(cmd.Offset))
	case OpSelectAll:
		e.SelectAll()
	case OpCollapse:
		e.CollapseSelection()

	case OpDelete:
		err = e.Delete(cmd.Movement)
	case OpWrite:
		err = e.Write(cmd.Text)
	case OpNewline:
		err = e.Write("\n")

	case OpSave:
		return s.doc.Save()
	case OpReload:
		return s.doc.Reload(true)
	case OpQuit:
		if s.doc.IsModified() {
			s.log.Warn("quitting with unsaved changes in %s", s.doc.Name())
		}
		return ErrQuit
	default:
		return NewOperationError(string(cmd.Op), "", ErrUnknownCommand)
	}

	if err != nil {
		return NewOperationError(string(cmd.Op), s.doc.Name(), err)
	}
	return nil
}

// RunScript runs Lua source against the document.
func (s *Session) RunScript(ctx context.Context, src string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	err := s.runtime().RunString(ctx, src)
	s.metrics.RecordCommand(KindSession, time.Since(start), err)
	if err != nil {
		return NewOperationError("script", "", err)
	}
	s.rehighlight()
	return nil
}

// Close stops the watcher and the script runtime. It is safe to call more
// than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.watcher != nil {
		errs = append(errs, s.watcher.Close())
	}
	if s.script != nil {
		errs = append(errs, s.script.Close())
	}
	s.log.Debug("session closed")
	return errors.Join(errs...)
}
