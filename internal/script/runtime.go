// Package script runs Lua scripts against an editing engine.
//
// Scripts see a global table named caret whose functions move the regions,
// edit the text and read it back. Offsets and line numbers are zero-based
// byte positions, the same as the engine's.
//
//	caret.cursor(0)
//	caret.move("EndOfParagraph")
//	caret.write(";")
//
// Only the base, table, string and math libraries are opened.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caret/internal/engine"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Runtime is a Lua state bound to one engine.
//
// gopher-lua states are single-threaded; the mutex serializes runs. Engine
// calls made by scripts take the engine lock per call, so a running script
// interleaves with other engine users between calls.
type Runtime struct {
	L *lua.LState

	mu      sync.Mutex
	eng     *engine.Engine
	out     io.Writer
	log     engine.Logger
	timeout time.Duration
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets the logger for script diagnostics.
func WithLogger(l engine.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTimeout sets the per-run time limit. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// New creates a runtime driving e.
func New(e *engine.Engine, opts ...Option) *Runtime {
	r := &Runtime{
		eng:     e,
		out:     os.Stdout,
		log:     nopLogger{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	registerModule(r.L, r.eng)
	return r
}

// openSafeLibraries opens only libraries without file or process access.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// RunString executes Lua source.
func (r *Runtime) RunString(ctx context.Context, src string) error {
	return r.run(ctx, "chunk", func() error { return r.L.DoString(src) })
}

// RunFile executes a Lua file.
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func() error { return r.L.DoFile(path) })
}

func (r *Runtime) run(ctx context.Context, name string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script %s: lua panic: %v", name, p)
		}
	}()

	start := time.Now()
	if err := fn(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("script %s: %w", name, ErrTimeout)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("script %s: %w", name, ctx.Err())
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	r.log.Debug("script %s finished in %s", name, time.Since(start))
	return nil
}

func (r *Runtime) print(L *lua.LState) int {
	n := L.GetTop()
	for i := 1; i <= n; i++ {
		if i > 1 {
			_, _ = io.WriteString(r.out, "\t")
		}
		_, _ = io.WriteString(r.out, L.ToStringMeta(L.Get(i)).String())
	}
	_, _ = io.WriteString(r.out, "\n")
	return 0
}

// Close releases the Lua state. It is safe to call more than once.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.L.Close()
		r.closed = true
	}
	return nil
}
